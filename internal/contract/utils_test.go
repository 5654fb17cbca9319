package contract

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{
			name:     "smallest value possible",
			input:    0.0,
			expected: HighValue,
		},
		{
			name:     "just before moderate",
			input:    39.9,
			expected: HighValue,
		},
		{
			name:     "exactly moderate",
			input:    40.0,
			expected: ModerateValue,
		},
		{
			name:     "just before mild",
			input:    59.9,
			expected: ModerateValue,
		},
		{
			name:     "exactly mild",
			input:    60.0,
			expected: MildValue,
		},
		{
			name:     "just before healthy",
			input:    79.9,
			expected: MildValue,
		},
		{
			name:     "exactly healthy",
			input:    80.0,
			expected: HealthyValue,
		},
		{
			name:     "perfect",
			input:    100.0,
			expected: HealthyValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.input))
		})
	}
}

func TestGetColorLabel(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		label string
	}{
		{"high", 30, HighValue},
		{"moderate", 50, ModerateValue},
		{"mild", 70, MildValue},
		{"healthy", 90, HealthyValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorLabel(tt.score)
			// Should contain the plain label
			assert.Contains(t, result, tt.label)
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "report.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestDBFilePaths(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	cache := GetCacheDBFilePath()
	history := GetHistoryDBFilePath()

	assert.Contains(t, cache, ".gaitscore_cache.db")
	assert.Contains(t, history, ".gaitscore_history.db")
	assert.NotEqual(t, cache, history)
	assert.True(t, strings.HasPrefix(cache, homeDir), "path %s should start with home dir %s", cache, homeDir)
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "short.txt", TruncatePath("short.txt", 20))
	assert.Equal(t, "...alk.txt", TruncatePath("/data/walk.txt", 10))
	assert.Equal(t, "/data/walk.txt", TruncatePath("/data/walk.txt", 3))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"", "yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := ParseBoolString("perhaps")
	assert.Error(t, err)
}

func TestParseAxis(t *testing.T) {
	for input, want := range map[string]int{"x": 0, "Y": 1, " z ": 2, "0": 0, "2": 2} {
		got, err := ParseAxis(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
	_, err := ParseAxis("3")
	assert.Error(t, err)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, slog.LevelInfo, false)
	l.Debug("hidden")
	l.Info("parsed log", "frames", 42)
	l.Warn("cache miss", "err", errors.New("boom"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "parsed log")
	assert.Contains(t, out, "frames=42")
	assert.Contains(t, out, "boom")
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("error")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, level)

	level, err = ParseLogLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	_, err = ParseLogLevel("verbose")
	assert.Error(t, err)
}
