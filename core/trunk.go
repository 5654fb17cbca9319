package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/qixiboss/gaitscore/core/agg"
	"github.com/qixiboss/gaitscore/schema"
)

// ComputeTrunkFlexion returns the mean angle in degrees between the
// pelvis-to-chest vector and the inferred up direction. Zero-length vectors
// are skipped. The metric is undefined when the up direction cannot be inferred.
func ComputeTrunkFlexion(store *schema.FrameStore, params schema.AnalysisParams) (schema.MetricSet, schema.ConfidenceFlags) {
	sig := ExtractTrunk(store, params.Axes)
	if !sig.UpKnown {
		return trunkUndefined()
	}

	angles := make([]float64, 0, len(sig.Vectors))
	for _, v := range sig.Vectors {
		if a, ok := angleBetween(v, sig.Up); ok {
			angles = append(angles, a)
		}
	}

	if len(angles) == 0 {
		return trunkUndefined()
	}
	return schema.MetricSet{schema.AvgTrunkFlexion: schema.Measured(agg.Mean(angles))}, schema.ConfidenceFlags{}
}

func trunkUndefined() (schema.MetricSet, schema.ConfidenceFlags) {
	return schema.MetricSet{schema.AvgTrunkFlexion: schema.Absent()}, schema.ConfidenceFlags{TrunkUndefined: true}
}

// angleBetween returns the angle between two vectors in degrees.
// The cosine is clamped to [-1, 1] before acos.
func angleBetween(a, b r3.Vec) (float64, bool) {
	na, nb := r3.Norm(a), r3.Norm(b)
	if na == 0 || nb == 0 {
		return 0, false
	}
	cos := r3.Dot(a, b) / (na * nb)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi, true
}
