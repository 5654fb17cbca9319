package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/qixiboss/gaitscore/internal/contract"
	"github.com/qixiboss/gaitscore/schema"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, intFmt
}

// formatMetric renders a metric value, or "n/a" when it could not be measured.
func formatMetric(m schema.Metric, fmtFloat func(float64) string) string {
	if !m.Present {
		return "n/a"
	}
	return fmtFloat(m.Value)
}

// formatRange renders the healthy range of a policy with its unit.
func formatRange(p schema.ScoringPolicy, fmtFloat func(float64) string) string {
	unit := schema.MetricUnits[p.Key]
	var text string
	if p.LowerIsBetter {
		text = "≤ " + fmtFloat(p.Hi)
	} else {
		text = fmtFloat(p.Lo) + " - " + fmtFloat(p.Hi)
	}
	if unit != "" {
		text += " " + unit
	}
	return text
}

// bandLabel returns the band label, colored when the config asks for it.
func bandLabel(composite float64, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(composite)
	}
	return contract.GetPlainLabel(composite)
}

// compositeNote flags a composite that excludes arm swing because no swing was detected.
func compositeNote(codes []string) string {
	if slices.Contains(codes, schema.FlagArmSwingUndetectable) {
		return " ⚠️  arm swing undetectable, not scored"
	}
	return ""
}

// metricName highlights a metric key for console output.
func metricName(key schema.MetricKey, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.MetricColor.Sprint(string(key))
	}
	return string(key)
}

// joinCodes joins flag codes for single-cell formats.
func joinCodes(codes []string) string {
	return strings.Join(codes, "|")
}
