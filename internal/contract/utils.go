package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/qixiboss/gaitscore/schema"
)

// Band label constants.
const (
	HealthyValue  = "Healthy"  // Healthy gait
	MildValue     = "Mild"     // Mild impairment
	ModerateValue = "Moderate" // Moderate impairment
	HighValue     = "High"     // High impairment
)

// Color variables for console output.
var (
	HealthyColor  = color.New(color.FgGreen)               // healthyColor represents a normal result.
	MildColor     = color.New(color.FgCyan)                // mildColor represents informational / low-priority signal.
	ModerateColor = color.New(color.FgYellow)              // moderateColor represents standard caution, not bold.
	HighColor     = color.New(color.FgRed, color.Bold)     // highColor represents standard danger.
	MetricColor   = color.New(color.FgMagenta, color.Bold) // metricColor highlights metric names in explanations.
)

// GetPlainLabel returns a plain text label indicating the impairment band
// based on the composite score. This is the core logic used for
// CSV, JSON, and table printing.
func GetPlainLabel(composite float64) string {
	switch {
	case composite >= schema.HealthyThreshold:
		return HealthyValue
	case composite >= schema.MildThreshold:
		return MildValue
	case composite >= schema.ModerateThreshold:
		return ModerateValue
	default:
		return HighValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(composite float64) string {
	text := GetPlainLabel(composite)

	switch text {
	case HealthyValue:
		return HealthyColor.Sprint(text)
	case MildValue:
		return MildColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "High"
		return HighColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for the parse cache.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gaitscore_cache.db"
	}
	return filepath.Join(homeDir, ".gaitscore_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for session history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gaitscore_history.db"
	}
	return filepath.Join(homeDir, ".gaitscore_history.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 so there is room for the "..." prefix and one character.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// An empty string means yes.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
