package schema

import "math"

// Metric is a measured value or an explicit "could not measure".
type Metric struct {
	Value   float64 `json:"value"`
	Present bool    `json:"present"`
}

// Measured returns a present metric.
func Measured(v float64) Metric {
	return Metric{Value: v, Present: true}
}

// Absent returns a metric that could not be measured.
func Absent() Metric {
	return Metric{}
}

// MetricSet maps metric keys to their results.
type MetricSet map[MetricKey]Metric

// Get returns the metric for key, treating a missing key as absent.
func (ms MetricSet) Get(key MetricKey) Metric {
	if ms == nil {
		return Absent()
	}
	return ms[key]
}

// Clone returns a copy of the set.
func (ms MetricSet) Clone() MetricSet {
	out := make(MetricSet, len(ms))
	for k, v := range ms {
		out[k] = v
	}
	return out
}

// ConfidenceFlags marks metrics that resolved to absent or low-confidence values.
type ConfidenceFlags struct {
	NoStepEvents         bool `json:"no_step_events"`
	InsufficientSteps    bool `json:"insufficient_steps"`
	NoAlternatingSteps   bool `json:"no_alternating_steps"`
	SpeedUndefined       bool `json:"speed_undefined"`
	ArmSwingMissing      bool `json:"arm_swing_missing"`
	ArmSwingUndetectable bool `json:"arm_swing_undetectable"`
	TrunkUndefined       bool `json:"trunk_undefined"`
}

// Flag codes reported by ConfidenceFlags.Codes.
const (
	FlagNoStepEvents         = "no_step_events"
	FlagInsufficientSteps    = "insufficient_steps"
	FlagNoAlternatingSteps   = "no_alternating_steps"
	FlagSpeedUndefined       = "speed_undefined"
	FlagArmSwingMissing      = "arm_swing_missing"
	FlagArmSwingUndetectable = "arm_swing_undetectable"
	FlagTrunkUndefined       = "trunk_undefined"
)

// Merge returns the union of two flag sets.
func (f ConfidenceFlags) Merge(o ConfidenceFlags) ConfidenceFlags {
	return ConfidenceFlags{
		NoStepEvents:         f.NoStepEvents || o.NoStepEvents,
		InsufficientSteps:    f.InsufficientSteps || o.InsufficientSteps,
		NoAlternatingSteps:   f.NoAlternatingSteps || o.NoAlternatingSteps,
		SpeedUndefined:       f.SpeedUndefined || o.SpeedUndefined,
		ArmSwingMissing:      f.ArmSwingMissing || o.ArmSwingMissing,
		ArmSwingUndetectable: f.ArmSwingUndetectable || o.ArmSwingUndetectable,
		TrunkUndefined:       f.TrunkUndefined || o.TrunkUndefined,
	}
}

// Codes lists the raised flags in a stable order.
func (f ConfidenceFlags) Codes() []string {
	var codes []string
	add := func(set bool, code string) {
		if set {
			codes = append(codes, code)
		}
	}
	add(f.NoStepEvents, FlagNoStepEvents)
	add(f.InsufficientSteps, FlagInsufficientSteps)
	add(f.NoAlternatingSteps, FlagNoAlternatingSteps)
	add(f.SpeedUndefined, FlagSpeedUndefined)
	add(f.ArmSwingMissing, FlagArmSwingMissing)
	add(f.ArmSwingUndetectable, FlagArmSwingUndetectable)
	add(f.TrunkUndefined, FlagTrunkUndefined)
	return codes
}

// Any reports whether any flag is raised.
func (f ConfidenceFlags) Any() bool {
	return len(f.Codes()) > 0
}

// SampleRef ties a position in a filtered series to the frame it was taken from.
type SampleRef struct {
	Valid int // position within the filtered series
	Frame int // true frame index
}

// StrikeEvent is a detected foot strike.
type StrikeEvent struct {
	Frame int  `json:"frame"`
	Side  Side `json:"side"`
}

// StrikeSet holds ascending strike frames per side.
type StrikeSet struct {
	Left  []int `json:"left"`
	Right []int `json:"right"`
}

// Side returns the strike frames for one side.
func (s StrikeSet) Side(side Side) []int {
	if side == Left {
		return s.Left
	}
	return s.Right
}

// Total returns the number of strikes on both sides.
func (s StrikeSet) Total() int {
	return len(s.Left) + len(s.Right)
}

// SubScore is the normalized score of a single metric.
type SubScore struct {
	Key    MetricKey `json:"key"`
	Value  float64   `json:"value"`
	Score  float64   `json:"score"`
	Weight float64   `json:"weight"`
}

// Deficit returns the weighted distance from a perfect sub-score.
func (s SubScore) Deficit() float64 {
	d := (10 - s.Score) * s.Weight
	if math.IsNaN(d) || d < 0 {
		return 0
	}
	return d
}
