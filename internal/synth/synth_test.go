package synth

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qixiboss/gaitscore/internal/ingest"
	"github.com/qixiboss/gaitscore/schema"
)

func TestBuild(t *testing.T) {
	data := DefaultWalk().Build()
	require.Len(t, data, 300)

	first, last := data[0][schema.Pelvis], data[299][schema.Pelvis]
	assert.InDelta(t, 1.3*299/30, last.X-first.X, 1e-9)
	assert.Len(t, data[0], 9)
}

func TestWriteLog(t *testing.T) {
	w := DefaultWalk()
	w.Frames = 2

	var buf bytes.Buffer
	require.NoError(t, w.WriteLog(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2*10)
	assert.Equal(t, "Frame: 0", lines[0])
	assert.Equal(t, "Joint 0: 0.000000, 0.900000, 1.000000", lines[1])
	assert.Equal(t, "Frame: 1", lines[10])
}

func TestWriteLogMillimeters(t *testing.T) {
	w := DefaultWalk()
	w.Frames = 1
	w.Scale = 1000

	var buf bytes.Buffer
	require.NoError(t, w.WriteLog(&buf))
	assert.Contains(t, buf.String(), "Joint 0: 0.000000, 900.000000, 1000.000000")
}

func TestWriteFileParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walk.txt")
	require.NoError(t, DefaultWalk().WriteFile(path))

	store, summary, err := ingest.LoadFile(path, schema.MetersUnits)
	require.NoError(t, err)
	assert.Equal(t, 300, store.Len())
	assert.Zero(t, summary.SkippedLines)
}

func TestWriteFileError(t *testing.T) {
	assert.Error(t, DefaultWalk().WriteFile(filepath.Join(t.TempDir(), "missing", "walk.txt")))
}
