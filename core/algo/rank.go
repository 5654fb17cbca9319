package algo

import (
	"sort"

	"github.com/qixiboss/gaitscore/schema"
)

// RankDeficits sorts sub-scores by weighted deficit in descending order
// and returns the top 'limit' entries. Sub-scores with no deficit are dropped.
// A non-positive limit returns every entry with a deficit.
func RankDeficits(scores []schema.SubScore, limit int) []schema.SubScore {
	ranked := make([]schema.SubScore, 0, len(scores))
	for _, s := range scores {
		if s.Deficit() > 0 {
			ranked = append(ranked, s)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Deficit() > ranked[j].Deficit()
	})
	if limit > 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}
