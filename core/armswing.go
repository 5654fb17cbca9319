package core

import (
	"github.com/qixiboss/gaitscore/core/agg"
	"github.com/qixiboss/gaitscore/schema"
)

// ComputeArmSwing measures the wrist excursion range per side and the
// asymmetry between sides. When the average range is at or below the noise
// floor the average is absent and the asymmetry is 0.
func ComputeArmSwing(store *schema.FrameStore, params schema.AnalysisParams) (schema.MetricSet, schema.ConfidenceFlags) {
	leftRange, leftOK := agg.Range(ExtractArmDepth(store, schema.Left, params.Axes).Values)
	rightRange, rightOK := agg.Range(ExtractArmDepth(store, schema.Right, params.Axes).Values)

	if !leftOK && !rightOK {
		return schema.MetricSet{
			schema.AvgArmSwing:       schema.Absent(),
			schema.ArmSwingAsymmetry: schema.Absent(),
		}, schema.ConfidenceFlags{ArmSwingMissing: true}
	}

	avg := (leftRange + rightRange) / 2
	asymmetry := agg.AsymmetryIndex(leftRange, rightRange, params.ArmNoiseFloor)

	ms := schema.MetricSet{schema.ArmSwingAsymmetry: schema.Measured(asymmetry)}
	var flags schema.ConfidenceFlags
	if avg <= params.ArmNoiseFloor {
		ms[schema.AvgArmSwing] = schema.Absent()
		flags.ArmSwingUndetectable = true
	} else {
		ms[schema.AvgArmSwing] = schema.Measured(avg)
	}
	flags.ArmSwingMissing = !leftOK || !rightOK
	return ms, flags
}
