package agg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Zero(t, Mean(nil))
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-12)
}

func TestPopCV(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"empty", nil, 0},
		{"constant", []float64{0.7, 0.7, 0.7}, 0},
		{"zero mean", []float64{-1, 1}, 0},
		{"population std", []float64{1, 3}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, PopCV(tt.values), 1e-12)
		})
	}
}

func TestAsymmetryIndex(t *testing.T) {
	tests := []struct {
		name     string
		a, b     float64
		floor    float64
		expected float64
	}{
		{"equal", 0.7, 0.7, 0, 0},
		{"both zero", 0, 0, 0, 0},
		{"one zero", 0.6, 0, 0, 2},
		{"classic", 0.6, 0.8, 0, 0.2 / 0.7},
		{"below floor", 0.004, 0.002, 0.01, 0},
		{"at floor", 0.01, 0.01, 0.01, 0},
		{"nan", math.NaN(), 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AsymmetryIndex(tt.a, tt.b, tt.floor)
			assert.InDelta(t, tt.expected, got, 1e-12)
			assert.InDelta(t, got, AsymmetryIndex(tt.b, tt.a, tt.floor), 1e-12, "must be symmetric")
		})
	}
}

func TestRange(t *testing.T) {
	_, ok := Range(nil)
	assert.False(t, ok)

	r, ok := Range([]float64{0.1, -0.2, 0.3})
	assert.True(t, ok)
	assert.InDelta(t, 0.5, r, 1e-12)
}
