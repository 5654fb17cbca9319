package core

import (
	"github.com/qixiboss/gaitscore/core/algo"
	"github.com/qixiboss/gaitscore/schema"
)

// DetectStrikes finds foot strikes as peaks of the ankle height relative to the pelvis.
// Peak positions are translated to true frames before returning.
// If either side has no signal, no strikes are reported for either side.
func DetectStrikes(left, right Series, params schema.AnalysisParams) schema.StrikeSet {
	if left.Len() == 0 || right.Len() == 0 {
		return schema.StrikeSet{}
	}
	distance := params.MinSpacingFrames()
	return schema.StrikeSet{
		Left:  strikeFrames(left, distance, params.MinProminence),
		Right: strikeFrames(right, distance, params.MinProminence),
	}
}

// strikeFrames runs peak detection on one side and maps positions to frames.
func strikeFrames(s Series, distance int, prominence float64) []int {
	peaks := algo.FindPeaks(s.Values, distance, prominence)
	frames := make([]int, 0, len(peaks))
	for _, p := range peaks {
		if frame, ok := s.Frame(p); ok {
			frames = append(frames, frame)
		}
	}
	return frames
}

// MergeStrikes returns both sides' strikes ordered by frame, left first on ties.
func MergeStrikes(strikes schema.StrikeSet) []schema.StrikeEvent {
	events := make([]schema.StrikeEvent, 0, strikes.Total())
	i, j := 0, 0
	for i < len(strikes.Left) || j < len(strikes.Right) {
		switch {
		case j >= len(strikes.Right) || (i < len(strikes.Left) && strikes.Left[i] <= strikes.Right[j]):
			events = append(events, schema.StrikeEvent{Frame: strikes.Left[i], Side: schema.Left})
			i++
		default:
			events = append(events, schema.StrikeEvent{Frame: strikes.Right[j], Side: schema.Right})
			j++
		}
	}
	return events
}
