package core

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/qixiboss/gaitscore/schema"
)

// walkSpec describes a synthetic straight-line walk at 30 fps.
// Heights run along Z and the ground plane is X/Z, matching the default axes.
type walkSpec struct {
	frames    int
	period    int     // strike period in frames
	amplitude float64 // ankle height amplitude in meters
	speed     float64 // pelvis speed along X in m/s
	armSwing  float64 // wrist height amplitude in meters, 0 for static arms
	leanDeg   float64 // forward trunk lean
	drop      func(frame int) bool
}

func defaultWalk() walkSpec {
	return walkSpec{frames: 300, period: 36, amplitude: 0.15, speed: 1.3}
}

// build renders the walk into joint frames.
func (w walkSpec) build() map[int]map[schema.Joint]r3.Vec {
	data := make(map[int]map[schema.Joint]r3.Vec, w.frames)
	lean := w.leanDeg * math.Pi / 180
	for f := range w.frames {
		if w.drop != nil && w.drop(f) {
			continue
		}
		phase := 2 * math.Pi * float64(f) / float64(w.period)
		pelvis := r3.Vec{X: w.speed * float64(f) / schema.DefaultFPS, Y: 0.9, Z: 1.0}
		ankle := func(offset float64) r3.Vec {
			return r3.Vec{X: pelvis.X, Y: 0.1, Z: pelvis.Z + w.amplitude*math.Sin(phase+offset)}
		}
		shoulderL := r3.Add(pelvis, r3.Vec{Y: 0.5, Z: 0.2})
		shoulderR := r3.Add(pelvis, r3.Vec{Y: 0.5, Z: -0.2})
		wrist := func(shoulder r3.Vec, offset float64) r3.Vec {
			return r3.Add(shoulder, r3.Vec{Y: -0.5, Z: w.armSwing * math.Sin(phase+offset)})
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

func (w walkSpec) store() *schema.FrameStore {
	return schema.NewFrameStore(w.build())
}

// mirror swaps every left joint with its right counterpart.
func mirror(data map[int]map[schema.Joint]r3.Vec) map[int]map[schema.Joint]r3.Vec {
	pairs := map[schema.Joint]schema.Joint{
		schema.AnkleLeft:    schema.AnkleRight,
		schema.WristLeft:    schema.WristRight,
		schema.ShoulderLeft: schema.ShoulderRight,
	}
	out := make(map[int]map[schema.Joint]r3.Vec, len(data))
	for f, joints := range data {
		m := make(map[schema.Joint]r3.Vec, len(joints))
		for j, pos := range joints {
			m[j] = pos
		}
		for l, r := range pairs {
			lp, lok := joints[l]
			rp, rok := joints[r]
			delete(m, l)
			delete(m, r)
			if lok {
				m[r] = lp
			}
			if rok {
				m[l] = rp
			}
		}
		out[f] = m
	}
	return out
}

// writeLog renders the walk as a joint log file and returns its path.
func (w walkSpec) writeLog(t testing.TB) string {
	t.Helper()
	data := w.build()
	frames := make([]int, 0, len(data))
	for f := range data {
		frames = append(frames, f)
	}
	slices.Sort(frames)

	var sb strings.Builder
	for _, f := range frames {
		fmt.Fprintf(&sb, "Frame: %d\n", f)
		for j := range schema.JointCount {
			if pos, ok := data[f][schema.Joint(j)]; ok {
				fmt.Fprintf(&sb, "Joint %d: %.6f, %.6f, %.6f\n", j, pos.X, pos.Y, pos.Z)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "walk.txt")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
