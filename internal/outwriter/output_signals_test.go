package outwriter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qixiboss/gaitscore/internal/contract"
	"github.com/qixiboss/gaitscore/schema"
)

func sampleSignals() *schema.SignalSet {
	return &schema.SignalSet{
		Source: "/data/walk01.txt",
		FPS:    30,
		Left: schema.SignalTrace{
			Side:    schema.Left,
			Frames:  []int{0, 1, 2, 3, 4, 5},
			Values:  []float64{0.1, 0.3, 0.1, 0.0, 0.4, 0.1},
			Strikes: []int{1, 4},
		},
		Right: schema.SignalTrace{
			Side:    schema.Right,
			Frames:  []int{0, 2, 4},
			Values:  []float64{0.2, 0.5, 0.2},
			Strikes: []int{2, 3},
		},
	}
}

func TestStrikePoints(t *testing.T) {
	signals := sampleSignals()
	assert.Equal(t, [][2]float64{{1, 0.3}, {4, 0.4}}, strikePoints(signals.Left))
	// Frame 3 is not part of the right trace
	assert.Equal(t, [][2]float64{{2, 0.5}}, strikePoints(signals.Right))
	assert.Empty(t, strikePoints(schema.SignalTrace{}))
}

func TestSignalsOutputPath(t *testing.T) {
	signals := sampleSignals()
	assert.Equal(t, "walk01_signals.png", signalsOutputPath(signals, &contract.Config{PlotFormat: schema.PNGPlot}))
	assert.Equal(t, "walk01_signals.html", signalsOutputPath(signals, &contract.Config{PlotFormat: schema.HTMLPlot}))
	assert.Equal(t, "out.html", signalsOutputPath(signals, &contract.Config{PlotFormat: schema.HTMLPlot, OutputFile: "out.html"}))
	assert.Equal(t, "gaitscore_signals.html", signalsOutputPath(&schema.SignalSet{}, &contract.Config{PlotFormat: schema.HTMLPlot}))
}

func TestWriteSignalsHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSignalsHTML(&buf, sampleSignals()))
	output := buf.String()
	assert.Contains(t, output, "Gait Strike Signals")
	assert.Contains(t, output, "left strikes")
	assert.Contains(t, output, "right strikes")
}

func TestWriteSignalsPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSignalsPNG(&buf, sampleSignals()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestOutWriterSignalsToFile(t *testing.T) {
	cfg := &contract.Config{
		PlotFormat: schema.PNGPlot,
		OutputFile: filepath.Join(t.TempDir(), "signals.png"),
	}
	require.NoError(t, NewOutWriter().WriteSignals(sampleSignals(), cfg))

	info, err := os.Stat(cfg.OutputFile)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
