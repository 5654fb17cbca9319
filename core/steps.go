package core

import (
	"github.com/qixiboss/gaitscore/core/agg"
	"github.com/qixiboss/gaitscore/schema"
)

// minStrikesPerSide is the fewest strikes per side needed for step parameters.
const minStrikesPerSide = 2

// stepOutputs are the metrics produced by ComputeStepParameters.
var stepOutputs = []schema.MetricKey{schema.AvgStepLength, schema.StepLengthCV, schema.StepLengthAsymmetry}

// ComputeStepParameters derives step length, variability and asymmetry from
// alternating strikes. Same-side neighbours are skipped. Each step is the
// ground-plane distance between the two ankles at their strike frames and is
// attributed to the side of the later strike.
func ComputeStepParameters(store *schema.FrameStore, strikes schema.StrikeSet, params schema.AnalysisParams) (schema.MetricSet, schema.ConfidenceFlags) {
	absent := func(flags schema.ConfidenceFlags) (schema.MetricSet, schema.ConfidenceFlags) {
		ms := make(schema.MetricSet, len(stepOutputs))
		for _, key := range stepOutputs {
			ms[key] = schema.Absent()
		}
		return ms, flags
	}

	if len(strikes.Left) < minStrikesPerSide || len(strikes.Right) < minStrikesPerSide {
		return absent(schema.ConfidenceFlags{
			InsufficientSteps: true,
			NoStepEvents:      strikes.Total() == 0,
		})
	}

	var all []float64
	bySide := map[schema.Side][]float64{}
	events := MergeStrikes(strikes)
	for i := 1; i < len(events); i++ {
		prev, cur := events[i-1], events[i]
		if prev.Side == cur.Side {
			continue
		}
		from, ok := store.Position(prev.Frame, prev.Side.Ankle())
		if !ok {
			continue
		}
		to, ok := store.Position(cur.Frame, cur.Side.Ankle())
		if !ok {
			continue
		}
		length := horizontalDistance(from, to, params.Axes)
		all = append(all, length)
		bySide[cur.Side] = append(bySide[cur.Side], length)
	}

	if len(all) == 0 {
		return absent(schema.ConfidenceFlags{NoAlternatingSteps: true})
	}

	return schema.MetricSet{
		schema.AvgStepLength:       schema.Measured(agg.Mean(all)),
		schema.StepLengthCV:        schema.Measured(agg.PopCV(all)),
		schema.StepLengthAsymmetry: schema.Measured(agg.AsymmetryIndex(agg.Mean(bySide[schema.Left]), agg.Mean(bySide[schema.Right]), 0)),
	}, schema.ConfidenceFlags{}
}
