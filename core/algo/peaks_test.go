package algo

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qixiboss/gaitscore/schema"
)

func sinusoid(n, period int, amplitude, phase float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*float64(i)/float64(period)+phase)
	}
	return out
}

func TestFindPeaks(t *testing.T) {
	tests := []struct {
		name       string
		values     []float64
		distance   int
		prominence float64
		want       []int
	}{
		{"empty", nil, 1, 0, nil},
		{"too short", []float64{0, 1}, 1, 0, nil},
		{"single peak", []float64{0, 1, 0}, 1, 0, []int{1}},
		{"edges are not peaks", []float64{3, 1, 2, 1, 3}, 1, 0, []int{2}},
		{"plateau midpoint", []float64{0, 2, 2, 2, 0}, 1, 0, []int{2}},
		{"even plateau rounds down", []float64{0, 2, 2, 0}, 1, 0, []int{1}},
		{"rising plateau is not a peak", []float64{0, 2, 2, 3, 0}, 1, 0, []int{3}},
		{"flat signal", []float64{1, 1, 1, 1}, 1, 0, nil},
		{"distance keeps taller", []float64{0, 1, 0, 2, 0}, 3, 0, []int{3}},
		{"distance allows spaced peaks", []float64{0, 1, 0, 2, 0}, 2, 0, []int{1, 3}},
		{"prominence filters jitter", []float64{0, 1, 0.98, 0.99, 0, 1, 0}, 1, 0.05, []int{1, 5}},
		{"prominence below threshold", []float64{0, 0.04, 0}, 1, 0.05, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindPeaks(tt.values, tt.distance, tt.prominence)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FindPeaks mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindPeaksSinusoid(t *testing.T) {
	tests := []struct {
		n      int
		period int
		phase  float64
	}{
		{300, 36, 0},
		{300, 36, math.Pi},
		{360, 30, 0.3},
		{180, 24, 1.0},
		{1000, 40, 2.0},
	}
	const distance = 12
	for _, tt := range tests {
		values := sinusoid(tt.n, tt.period, 0.15, tt.phase)
		peaks := FindPeaks(values, distance, 0.05)

		expected := tt.n / tt.period
		assert.InDelta(t, expected, len(peaks), 1, "n=%d period=%d", tt.n, tt.period)
		for i := 1; i < len(peaks); i++ {
			assert.GreaterOrEqual(t, peaks[i]-peaks[i-1], distance)
		}
	}
}

func TestFindPeaksLowAmplitude(t *testing.T) {
	values := sinusoid(300, 36, 0.02, 0)
	assert.Empty(t, FindPeaks(values, 12, 0.05))
}

func TestProminence(t *testing.T) {
	x := []float64{0, 3, 1, 2, 0.5, 4, 0}
	assert.InDelta(t, 2.5, Prominence(x, 1), 1e-12)
	assert.InDelta(t, 1.0, Prominence(x, 3), 1e-12)
	assert.InDelta(t, 4.0, Prominence(x, 5), 1e-12)
	assert.Zero(t, Prominence(x, -1))
	assert.Zero(t, Prominence(x, 10))
}

func TestRankDeficits(t *testing.T) {
	scores := []schema.SubScore{
		{Key: schema.GaitSpeed, Score: 10, Weight: 2},
		{Key: schema.AvgArmSwing, Score: 4, Weight: 2.5},
		{Key: schema.StepLengthCV, Score: 2, Weight: 1},
		{Key: schema.AvgTrunkFlexion, Score: 0, Weight: 0.5},
	}

	ranked := RankDeficits(scores, 0)
	require.Len(t, ranked, 3)
	assert.Equal(t, schema.AvgArmSwing, ranked[0].Key)
	assert.Equal(t, schema.StepLengthCV, ranked[1].Key)
	assert.Equal(t, schema.AvgTrunkFlexion, ranked[2].Key)

	top := RankDeficits(scores, 1)
	require.Len(t, top, 1)
	assert.Equal(t, schema.AvgArmSwing, top[0].Key)

	assert.Empty(t, RankDeficits(nil, 3))
}

func BenchmarkFindPeaks(b *testing.B) {
	values := sinusoid(9000, 36, 0.15, 0)
	for b.Loop() {
		FindPeaks(values, 12, 0.05)
	}
}
