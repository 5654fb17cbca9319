package contract

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lmittmann/tint"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(NewLogger(os.Stderr, slog.LevelWarn, false))
}

// NewLogger creates a tint-backed structured logger.
func NewLogger(w io.Writer, level slog.Level, useColor bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !useColor,
	}))
}

// InitLogger replaces the shared logger writing to stderr.
func InitLogger(level slog.Level, useColor bool) {
	logger.Store(NewLogger(os.Stderr, level, useColor))
}

// Logger returns the shared logger.
func Logger() *slog.Logger {
	return logger.Load()
}

// ParseLogLevel parses debug, info, warn or error.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(strings.TrimSpace(s)))
	return level, err
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	Logger().Error("Fatal "+msg, "err", err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	Logger().Warn(msg, "err", err)
}

// LogInfo logs an informational message with attributes.
func LogInfo(msg string, args ...any) {
	Logger().Info(msg, args...)
}
