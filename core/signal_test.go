package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/qixiboss/gaitscore/schema"
)

func TestExtractPelvisPath(t *testing.T) {
	data := map[int]map[schema.Joint]r3.Vec{
		3: {schema.Pelvis: {X: 0.1}},
		5: {schema.Head: {Y: 1.6}},
		9: {schema.Pelvis: {X: 0.4}},
		7: {schema.Pelvis: {X: 0.2}},
	}
	path := ExtractPelvisPath(schema.NewFrameStore(data))

	wantRefs := []schema.SampleRef{{Valid: 0, Frame: 3}, {Valid: 1, Frame: 7}, {Valid: 2, Frame: 9}}
	if diff := cmp.Diff(wantRefs, path.Refs); diff != "" {
		t.Errorf("pelvis refs mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []r3.Vec{{X: 0.1}, {X: 0.2}, {X: 0.4}}, path.Positions)
	assert.Equal(t, 3, path.Len())

	assert.Zero(t, ExtractPelvisPath(schema.NewFrameStore(nil)).Len())
}

func TestExtractTrunkUpDirection(t *testing.T) {
	axes := schema.DefaultParams().Axes

	withHead := schema.NewFrameStore(map[int]map[schema.Joint]r3.Vec{
		0: {schema.Pelvis: {Y: 1}, schema.SpineChest: {Y: 1.3}, schema.Head: {Y: 1.7}},
	})
	sig := ExtractTrunk(withHead, axes)
	assert.True(t, sig.UpKnown)
	assert.Equal(t, r3.Vec{Y: 1}, sig.Up)
	assert.Len(t, sig.Vectors, 1)

	noHead := schema.NewFrameStore(map[int]map[schema.Joint]r3.Vec{
		0: {schema.Pelvis: {Y: 1}, schema.SpineChest: {Y: 1.3}},
	})
	sig = ExtractTrunk(noHead, axes)
	assert.False(t, sig.UpKnown)
	assert.Equal(t, r3.Vec{}, sig.Up)
	assert.Len(t, sig.Vectors, 1, "trunk vectors do not depend on the head")
}

func TestComputeGaitSpeed(t *testing.T) {
	params := schema.DefaultParams()

	t.Run("pelvis at both ends", func(t *testing.T) {
		store := schema.NewFrameStore(map[int]map[schema.Joint]r3.Vec{
			0:  {schema.Pelvis: {X: 0, Y: 1}},
			15: {schema.AnkleLeft: {X: 1}},
			30: {schema.Pelvis: {X: 0.6, Y: 1.2, Z: 0.8}},
		})
		ms, flags := ComputeGaitSpeed(store, params)
		assert.False(t, flags.SpeedUndefined)
		assert.InDelta(t, 1.0, ms.Get(schema.GaitSpeed).Value, 1e-9, "vertical drift is ignored")
	})

	t.Run("pelvis missing on the last frame", func(t *testing.T) {
		store := schema.NewFrameStore(map[int]map[schema.Joint]r3.Vec{
			0:  {schema.Pelvis: {X: 0}},
			20: {schema.Pelvis: {X: 1}},
			30: {schema.AnkleLeft: {X: 1}},
		})
		ms, flags := ComputeGaitSpeed(store, params)
		assert.True(t, flags.SpeedUndefined)
		assert.False(t, ms.Get(schema.GaitSpeed).Present)
	})

	t.Run("single frame", func(t *testing.T) {
		store := schema.NewFrameStore(map[int]map[schema.Joint]r3.Vec{0: {schema.Pelvis: {}}})
		_, flags := ComputeGaitSpeed(store, params)
		assert.True(t, flags.SpeedUndefined)
	})
}
