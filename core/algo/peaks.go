// Package algo has the signal and ranking algorithms used by the gait engine.
package algo

import "sort"

// FindPeaks returns the ascending positions of local maxima in values that are
// at least distance samples apart and have at least the given prominence.
//
// The first and last samples are never peaks. A flat top reports its middle
// sample. Spacing is enforced before prominence, tallest peaks first.
func FindPeaks(values []float64, distance int, prominence float64) []int {
	peaks := localMaxima(values)
	if len(peaks) == 0 {
		return peaks
	}
	if distance > 1 {
		peaks = selectByDistance(values, peaks, distance)
	}
	kept := peaks[:0:0]
	for _, p := range peaks {
		if Prominence(values, p) >= prominence {
			kept = append(kept, p)
		}
	}
	return kept
}

// localMaxima finds strict local maxima, treating plateaus as one peak at their midpoint.
func localMaxima(x []float64) []int {
	var peaks []int
	last := len(x) - 1
	for i := 1; i < last; i++ {
		if x[i-1] >= x[i] {
			continue
		}
		ahead := i + 1
		for ahead < last && x[ahead] == x[i] {
			ahead++
		}
		if x[ahead] < x[i] {
			peaks = append(peaks, (i+ahead-1)/2)
			i = ahead - 1
		}
	}
	return peaks
}

// selectByDistance drops peaks closer than distance to a taller kept peak.
func selectByDistance(x []float64, peaks []int, distance int) []int {
	order := make([]int, len(peaks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return x[peaks[order[a]]] < x[peaks[order[b]]]
	})

	keep := make([]bool, len(peaks))
	for i := range keep {
		keep[i] = true
	}
	for i := len(order) - 1; i >= 0; i-- {
		j := order[i]
		if !keep[j] {
			continue
		}
		for k := j - 1; k >= 0 && peaks[j]-peaks[k] < distance; k-- {
			keep[k] = false
		}
		for k := j + 1; k < len(peaks) && peaks[k]-peaks[j] < distance; k++ {
			keep[k] = false
		}
	}

	out := make([]int, 0, len(peaks))
	for i, p := range peaks {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}

// Prominence returns how far the peak at position p rises above the higher of
// its two bases. Each base is the lowest sample reached walking outward before
// a strictly higher sample or the series edge.
func Prominence(x []float64, p int) float64 {
	if p < 0 || p >= len(x) {
		return 0
	}
	h := x[p]
	leftMin := h
	for i := p; i >= 0 && x[i] <= h; i-- {
		leftMin = min(leftMin, x[i])
	}
	rightMin := h
	for i := p; i < len(x) && x[i] <= h; i++ {
		rightMin = min(rightMin, x[i])
	}
	return h - max(leftMin, rightMin)
}
