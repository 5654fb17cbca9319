// Package agg has the aggregation statistics used by the metric calculators.
package agg

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean, or 0 for no values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// PopCV returns the population coefficient of variation (std / mean).
// It is 0 when there are no values or the mean is 0.
func PopCV(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// AsymmetryIndex returns |a-b| / ((a+b)/2), or 0 when the average is at or below floor.
func AsymmetryIndex(a, b, floor float64) float64 {
	avg := (a + b) / 2
	if avg <= floor || math.IsNaN(avg) {
		return 0
	}
	return math.Abs(a-b) / avg
}

// Range returns max - min, and false for no values.
func Range(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	return floats.Max(values) - floats.Min(values), true
}
