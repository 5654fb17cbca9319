package schema

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned when analysis parameters fail validation.
var ErrInvalidParams = errors.New("invalid analysis parameters")

// Default analysis parameters. These are clinical assumptions pending validation.
const (
	DefaultFPS                 = 30.0
	DefaultMinStrikeSpacingSec = 0.4
	DefaultMinProminence       = 0.05
	DefaultArmNoiseFloor       = 0.01
	DefaultHeightAxis          = 2
	DefaultVerticalAxis        = 1
)

// DefaultHorizontalAxes are the axes of the ground plane.
var DefaultHorizontalAxes = [2]int{0, 2}

// Axes maps body directions to coordinate indices (0=x, 1=y, 2=z).
type Axes struct {
	Height     int    `json:"height"`     // ankle height and arm depth signal axis
	Vertical   int    `json:"vertical"`   // trunk reference axis
	Horizontal [2]int `json:"horizontal"` // ground plane
}

// AnalysisParams configures the core engine.
type AnalysisParams struct {
	FPS                 float64 `json:"fps"`
	MinStrikeSpacingSec float64 `json:"min_strike_spacing_sec"`
	MinProminence       float64 `json:"min_prominence"`
	ArmNoiseFloor       float64 `json:"arm_noise_floor"`
	Axes                Axes    `json:"axes"`
}

// DefaultParams returns the default analysis parameters.
func DefaultParams() AnalysisParams {
	return AnalysisParams{
		FPS:                 DefaultFPS,
		MinStrikeSpacingSec: DefaultMinStrikeSpacingSec,
		MinProminence:       DefaultMinProminence,
		ArmNoiseFloor:       DefaultArmNoiseFloor,
		Axes: Axes{
			Height:     DefaultHeightAxis,
			Vertical:   DefaultVerticalAxis,
			Horizontal: DefaultHorizontalAxes,
		},
	}
}

// MinSpacingFrames converts the strike spacing to frames, rounding up.
func (p AnalysisParams) MinSpacingFrames() int {
	n := int(math.Ceil(p.MinStrikeSpacingSec*p.FPS - 1e-9))
	return max(n, 1)
}

// Validate checks the parameters for usable values.
func (p AnalysisParams) Validate() error {
	if !(p.FPS > 0) || math.IsInf(p.FPS, 0) {
		return fmt.Errorf("%w: fps must be positive, got %v", ErrInvalidParams, p.FPS)
	}
	if p.MinStrikeSpacingSec < 0 || math.IsNaN(p.MinStrikeSpacingSec) {
		return fmt.Errorf("%w: min strike spacing must be non-negative, got %v", ErrInvalidParams, p.MinStrikeSpacingSec)
	}
	if p.MinProminence < 0 || math.IsNaN(p.MinProminence) {
		return fmt.Errorf("%w: min prominence must be non-negative, got %v", ErrInvalidParams, p.MinProminence)
	}
	if p.ArmNoiseFloor < 0 || math.IsNaN(p.ArmNoiseFloor) {
		return fmt.Errorf("%w: arm noise floor must be non-negative, got %v", ErrInvalidParams, p.ArmNoiseFloor)
	}
	for name, axis := range map[string]int{
		"height":       p.Axes.Height,
		"vertical":     p.Axes.Vertical,
		"horizontal-0": p.Axes.Horizontal[0],
		"horizontal-1": p.Axes.Horizontal[1],
	} {
		if axis < 0 || axis > 2 {
			return fmt.Errorf("%w: %s axis must be 0, 1 or 2, got %d", ErrInvalidParams, name, axis)
		}
	}
	if p.Axes.Horizontal[0] == p.Axes.Horizontal[1] {
		return fmt.Errorf("%w: horizontal axes must differ, got %v", ErrInvalidParams, p.Axes.Horizontal)
	}
	return nil
}
