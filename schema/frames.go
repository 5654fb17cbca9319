package schema

import (
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// FrameStore is an immutable mapping of frame index to joint positions in meters.
// A joint missing from a frame is absent; there is no sentinel position.
type FrameStore struct {
	frames    []int
	positions map[int]map[Joint]r3.Vec
}

// NewFrameStore copies the input into a new store. Invalid joints are dropped.
func NewFrameStore(data map[int]map[Joint]r3.Vec) *FrameStore {
	fs := &FrameStore{
		frames:    make([]int, 0, len(data)),
		positions: make(map[int]map[Joint]r3.Vec, len(data)),
	}
	for frame, joints := range data {
		copied := make(map[Joint]r3.Vec, len(joints))
		for j, pos := range joints {
			if j.Valid() {
				copied[j] = pos
			}
		}
		fs.positions[frame] = copied
		fs.frames = append(fs.frames, frame)
	}
	slices.Sort(fs.frames)
	return fs
}

// Len returns the number of frames.
func (fs *FrameStore) Len() int {
	if fs == nil {
		return 0
	}
	return len(fs.frames)
}

// Frames returns the frame indices in ascending order.
func (fs *FrameStore) Frames() []int {
	if fs == nil {
		return nil
	}
	return slices.Clone(fs.frames)
}

// First returns the lowest frame index, or false for an empty store.
func (fs *FrameStore) First() (int, bool) {
	if fs.Len() == 0 {
		return 0, false
	}
	return fs.frames[0], true
}

// Last returns the highest frame index, or false for an empty store.
func (fs *FrameStore) Last() (int, bool) {
	if fs.Len() == 0 {
		return 0, false
	}
	return fs.frames[len(fs.frames)-1], true
}

// Position returns the position of a joint at a frame.
func (fs *FrameStore) Position(frame int, j Joint) (r3.Vec, bool) {
	if fs == nil {
		return r3.Vec{}, false
	}
	joints, ok := fs.positions[frame]
	if !ok {
		return r3.Vec{}, false
	}
	pos, ok := joints[j]
	return pos, ok
}

// HasAll reports whether every listed joint is present at the frame.
func (fs *FrameStore) HasAll(frame int, joints ...Joint) bool {
	for _, j := range joints {
		if _, ok := fs.Position(frame, j); !ok {
			return false
		}
	}
	return true
}

// JointCount returns the number of joints recorded at a frame.
func (fs *FrameStore) JointCount(frame int) int {
	if fs == nil {
		return 0
	}
	return len(fs.positions[frame])
}

// Export returns a deep copy of the underlying data, suitable for serialization.
func (fs *FrameStore) Export() map[int]map[Joint]r3.Vec {
	out := make(map[int]map[Joint]r3.Vec, fs.Len())
	if fs == nil {
		return out
	}
	for frame, joints := range fs.positions {
		copied := make(map[Joint]r3.Vec, len(joints))
		for j, pos := range joints {
			copied[j] = pos
		}
		out[frame] = copied
	}
	return out
}
