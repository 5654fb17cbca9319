package core

import (
	"math"

	"github.com/qixiboss/gaitscore/schema"
)

// ScoreMetric normalizes a metric value into a 0-10 sub-score under its policy.
//   - lower is better: 10 up to Hi, then falling linearly to 0 at 3*Hi
//   - higher is better: 10 from Lo up, proportional credit below Lo
//
// Non-finite values and degenerate bounds resolve to a defined score.
func ScoreMetric(p schema.ScoringPolicy, value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}

	clamp10 := func(v float64) float64 {
		if v < 0 || math.IsNaN(v) {
			return 0
		}
		if v > 10 {
			return 10
		}
		return v
	}

	if p.LowerIsBetter {
		if value <= p.Hi {
			return 10
		}
		if p.Hi <= 0 {
			return 0
		}
		return clamp10(10 * (1 - (value-p.Hi)/(2*p.Hi)))
	}

	if value >= p.Lo {
		return 10
	}
	if p.Lo <= 0 {
		return 10
	}
	return clamp10(10 * value / p.Lo)
}

// ComputeSubScores scores every present metric that has a policy.
func ComputeSubScores(metrics schema.MetricSet, policies schema.PolicySet) map[schema.MetricKey]schema.SubScore {
	out := make(map[schema.MetricKey]schema.SubScore, len(policies))
	for key, p := range policies {
		m := metrics.Get(key)
		if !m.Present {
			continue
		}
		out[key] = schema.SubScore{
			Key:    key,
			Value:  m.Value,
			Score:  ScoreMetric(p, m.Value),
			Weight: p.Weight,
		}
	}
	return out
}

// ComputeComposite returns the weighted mean of sub-scores scaled to 0-100.
// Entries with a non-positive weight are ignored; no usable entry yields 0.
func ComputeComposite(subScores map[schema.MetricKey]schema.SubScore) float64 {
	var weighted, totalWeight float64
	for _, s := range subScores {
		if !(s.Weight > 0) || math.IsInf(s.Weight, 0) {
			continue
		}
		weighted += s.Score * s.Weight
		totalWeight += s.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	composite := weighted / totalWeight * 10
	return math.Min(math.Max(composite, 0), 100)
}

// BandFor maps a composite score to its interpretation band.
func BandFor(composite float64) schema.Band {
	switch {
	case composite >= schema.HealthyThreshold:
		return schema.HealthyBand
	case composite >= schema.MildThreshold:
		return schema.MildBand
	case composite >= schema.ModerateThreshold:
		return schema.ModerateBand
	default:
		return schema.HighBand
	}
}

// Score runs the full scorer over a metric set.
func Score(metrics schema.MetricSet, policies schema.PolicySet) schema.ScoreSummary {
	subScores := ComputeSubScores(metrics, policies)
	composite := ComputeComposite(subScores)
	return schema.ScoreSummary{
		SubScores: subScores,
		Composite: composite,
		Band:      BandFor(composite),
	}
}
