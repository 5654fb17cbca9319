package core

import (
	"github.com/qixiboss/gaitscore/schema"
)

// ComputeGaitSpeed returns the ground-plane pelvis displacement between the
// first and last frames divided by the elapsed time. The pelvis must be present
// on both end frames of the store.
func ComputeGaitSpeed(store *schema.FrameStore, params schema.AnalysisParams) (schema.MetricSet, schema.ConfidenceFlags) {
	undefined := func() (schema.MetricSet, schema.ConfidenceFlags) {
		return schema.MetricSet{schema.GaitSpeed: schema.Absent()}, schema.ConfidenceFlags{SpeedUndefined: true}
	}

	first, ok := store.First()
	if !ok {
		return undefined()
	}
	last, _ := store.Last()
	duration := float64(last-first) / params.FPS
	if duration <= 0 {
		return undefined()
	}

	path := ExtractPelvisPath(store)
	n := path.Len()
	if n < 2 || path.Refs[0].Frame != first || path.Refs[n-1].Frame != last {
		return undefined()
	}

	speed := horizontalDistance(path.Positions[0], path.Positions[n-1], params.Axes) / duration
	return schema.MetricSet{schema.GaitSpeed: schema.Measured(speed)}, schema.ConfidenceFlags{}
}
