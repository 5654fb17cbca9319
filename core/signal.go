package core

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/qixiboss/gaitscore/schema"
)

// Series is a scalar signal built over the frames where its joints are present.
// Refs and Values are always the same length.
type Series struct {
	Refs   []schema.SampleRef
	Values []float64
}

// Len returns the number of samples.
func (s Series) Len() int {
	return len(s.Values)
}

// Frame translates a series position into its true frame index.
func (s Series) Frame(pos int) (int, bool) {
	if pos < 0 || pos >= len(s.Refs) {
		return 0, false
	}
	return s.Refs[pos].Frame, true
}

// axis returns the component of v along the given axis index.
func axis(v r3.Vec, idx int) float64 {
	switch idx {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// horizontal projects v onto the ground plane.
func horizontal(v r3.Vec, axes schema.Axes) r3.Vec {
	var out r3.Vec
	for _, idx := range axes.Horizontal {
		switch idx {
		case 0:
			out.X = v.X
		case 1:
			out.Y = v.Y
		default:
			out.Z = v.Z
		}
	}
	return out
}

// horizontalDistance returns the ground-plane distance between two points.
func horizontalDistance(a, b r3.Vec, axes schema.Axes) float64 {
	return r3.Norm(horizontal(r3.Sub(b, a), axes))
}

// extractRelative builds joint[axis] - ref[axis] over the frames holding both joints.
func extractRelative(store *schema.FrameStore, joint, ref schema.Joint, idx int) Series {
	var s Series
	for _, frame := range store.Frames() {
		jp, ok := store.Position(frame, joint)
		if !ok {
			continue
		}
		rp, ok := store.Position(frame, ref)
		if !ok {
			continue
		}
		s.Refs = append(s.Refs, schema.SampleRef{Valid: len(s.Values), Frame: frame})
		s.Values = append(s.Values, axis(jp, idx)-axis(rp, idx))
	}
	return s
}

// ExtractAnkleHeight returns the ankle height relative to the pelvis for one side.
func ExtractAnkleHeight(store *schema.FrameStore, side schema.Side, axes schema.Axes) Series {
	return extractRelative(store, side.Ankle(), schema.Pelvis, axes.Height)
}

// ExtractArmDepth returns the wrist depth relative to the shoulder for one side.
func ExtractArmDepth(store *schema.FrameStore, side schema.Side, axes schema.Axes) Series {
	return extractRelative(store, side.Wrist(), side.Shoulder(), axes.Height)
}

// TrunkSignal holds the pelvis-to-chest vectors and the inferred up direction.
// UpKnown is false when the head or the pelvis is never observed.
type TrunkSignal struct {
	Refs    []schema.SampleRef
	Vectors []r3.Vec
	Up      r3.Vec
	UpKnown bool
}

// ExtractTrunk returns trunk vectors for frames holding the pelvis and chest.
// Up points along the vertical axis with the sign that puts the head above the
// pelvis on average. Without both joints Up stays zero and UpKnown is false.
func ExtractTrunk(store *schema.FrameStore, axes schema.Axes) TrunkSignal {
	var sig TrunkSignal
	var headSum, pelvisSum float64
	var headN, pelvisN int

	for _, frame := range store.Frames() {
		pelvis, hasPelvis := store.Position(frame, schema.Pelvis)
		if hasPelvis {
			pelvisSum += axis(pelvis, axes.Vertical)
			pelvisN++
		}
		if head, ok := store.Position(frame, schema.Head); ok {
			headSum += axis(head, axes.Vertical)
			headN++
		}
		chest, hasChest := store.Position(frame, schema.SpineChest)
		if hasPelvis && hasChest {
			sig.Refs = append(sig.Refs, schema.SampleRef{Valid: len(sig.Vectors), Frame: frame})
			sig.Vectors = append(sig.Vectors, r3.Sub(chest, pelvis))
		}
	}

	if headN == 0 || pelvisN == 0 {
		return sig
	}
	sign := 1.0
	if headSum/float64(headN) < pelvisSum/float64(pelvisN) {
		sign = -1.0
	}
	switch axes.Vertical {
	case 0:
		sig.Up = r3.Vec{X: sign}
	case 1:
		sig.Up = r3.Vec{Y: sign}
	default:
		sig.Up = r3.Vec{Z: sign}
	}
	sig.UpKnown = true
	return sig
}

// PelvisPath holds pelvis positions for the frames where the pelvis is present.
type PelvisPath struct {
	Refs      []schema.SampleRef
	Positions []r3.Vec
}

// Len returns the number of samples.
func (p PelvisPath) Len() int {
	return len(p.Positions)
}

// ExtractPelvisPath returns the pelvis trajectory over the frames holding it.
func ExtractPelvisPath(store *schema.FrameStore) PelvisPath {
	var path PelvisPath
	for _, frame := range store.Frames() {
		pos, ok := store.Position(frame, schema.Pelvis)
		if !ok {
			continue
		}
		path.Refs = append(path.Refs, schema.SampleRef{Valid: len(path.Positions), Frame: frame})
		path.Positions = append(path.Positions, pos)
	}
	return path
}
