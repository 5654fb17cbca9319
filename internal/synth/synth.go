// Package synth renders synthetic straight-line walks as joint logs.
package synth

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/qixiboss/gaitscore/schema"
)

// Walk describes a synthetic walk. Heights run along Z and the ground plane is X/Z,
// matching the default axes.
type Walk struct {
	Frames    int
	FPS       float64
	Period    int     // strike period in frames
	Amplitude float64 // ankle height amplitude in meters
	Speed     float64 // pelvis speed along X in m/s
	ArmSwing  float64 // wrist amplitude in meters, 0 for static arms
	LeanDeg   float64 // forward trunk lean
	Scale     float64 // coordinate scale, 1000 renders millimeters
}

// DefaultWalk is a healthy ten second walk at 30 fps.
func DefaultWalk() Walk {
	return Walk{
		Frames:    300,
		FPS:       schema.DefaultFPS,
		Period:    36,
		Amplitude: 0.15,
		Speed:     1.3,
		ArmSwing:  0.2,
		LeanDeg:   4,
		Scale:     1,
	}
}

// Build returns the joint positions of every frame, in meters.
func (w Walk) Build() map[int]map[schema.Joint]r3.Vec {
	fps := w.FPS
	if fps <= 0 {
		fps = schema.DefaultFPS
	}
	period := max(w.Period, 2)
	lean := w.LeanDeg * math.Pi / 180

	data := make(map[int]map[schema.Joint]r3.Vec, w.Frames)
	for f := range w.Frames {
		phase := 2 * math.Pi * float64(f) / float64(period)
		pelvis := r3.Vec{X: w.Speed * float64(f) / fps, Y: 0.9, Z: 1.0}
		ankle := func(offset float64) r3.Vec {
			return r3.Vec{X: pelvis.X, Y: 0.1, Z: pelvis.Z + w.Amplitude*math.Sin(phase+offset)}
		}
		shoulderL := r3.Add(pelvis, r3.Vec{Y: 0.5, Z: 0.2})
		shoulderR := r3.Add(pelvis, r3.Vec{Y: 0.5, Z: -0.2})
		wrist := func(shoulder r3.Vec, offset float64) r3.Vec {
			return r3.Add(shoulder, r3.Vec{Y: -0.5, Z: w.ArmSwing * math.Sin(phase+offset)})
		}

		data[f] = map[schema.Joint]r3.Vec{
			schema.Pelvis:        pelvis,
			schema.SpineChest:    r3.Add(pelvis, r3.Vec{X: 0.5 * math.Sin(lean), Y: 0.5 * math.Cos(lean)}),
			schema.Head:          r3.Add(pelvis, r3.Vec{Y: 0.7}),
			schema.AnkleLeft:     ankle(0),
			schema.AnkleRight:    ankle(math.Pi),
			schema.ShoulderLeft:  shoulderL,
			schema.ShoulderRight: shoulderR,
			schema.WristLeft:     wrist(shoulderL, math.Pi),
			schema.WristRight:    wrist(shoulderR, 0),
		}
	}
	return data
}

// WriteLog renders the walk in the tracker text format.
func (w Walk) WriteLog(out io.Writer) error {
	scale := w.Scale
	if scale <= 0 {
		scale = 1
	}
	data := w.Build()
	frames := make([]int, 0, len(data))
	for f := range data {
		frames = append(frames, f)
	}
	slices.Sort(frames)

	bw := bufio.NewWriter(out)
	for _, f := range frames {
		if _, err := fmt.Fprintf(bw, "Frame: %d\n", f); err != nil {
			return err
		}
		for j := range schema.JointCount {
			pos, ok := data[f][schema.Joint(j)]
			if !ok {
				continue
			}
			pos = r3.Scale(scale, pos)
			if _, err := fmt.Fprintf(bw, "Joint %d: %.6f, %.6f, %.6f\n", j, pos.X, pos.Y, pos.Z); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// WriteFile renders the walk to a joint log file.
func (w Walk) WriteFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create joint log %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	return w.WriteLog(f)
}
