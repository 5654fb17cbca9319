package contract

import (
	"testing"
)

// FuzzParseSubScoreThresholds fuzzes the --min-subscores parser with random input.
func FuzzParseSubScoreThresholds(f *testing.F) {
	seeds := []string{
		"gait_speed:5",
		"gait_speed:5,avg_arm_swing:4.5",
		"cadence:3",
		":",
		",,,",
		"avg_trunk_flexion:NaN",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		thresholds, err := parseSubScoreThresholds(s)
		if err != nil {
			return
		}
		for key, v := range thresholds {
			if !key.IsScored() {
				t.Errorf("unscored metric %q accepted", key)
			}
			if !(v >= 0 && v <= 10) {
				t.Errorf("threshold %v for %s out of range", v, key)
			}
		}
	})
}

// FuzzTruncatePath checks that truncation never exceeds the requested width.
func FuzzTruncatePath(f *testing.F) {
	f.Add("/data/sessions/walk.txt", 10)
	f.Add("", 0)
	f.Add("日本語のパス/walk.txt", 5)

	f.Fuzz(func(t *testing.T, path string, width int) {
		out := TruncatePath(path, width)
		if width > 3 && len([]rune(out)) > width {
			t.Errorf("TruncatePath(%q, %d) = %q exceeds width", path, width, out)
		}
	})
}
