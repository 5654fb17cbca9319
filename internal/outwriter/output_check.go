package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/qixiboss/gaitscore/internal/contract"
	"github.com/qixiboss/gaitscore/schema"
)

// WriteCheckResult outputs a check result. Parquet output falls back to JSON.
func WriteCheckResult(result *schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut, schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckCSV(w, result, cfg)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckText(w, result, cfg, duration)
		}, "Wrote check")
	}
}

// violationName returns the display name of a violated score.
func violationName(v schema.CheckViolation) string {
	if v.Key == "" {
		return "composite"
	}
	return string(v.Key)
}

// writeCheckCSV writes one row per violation.
func writeCheckCSV(w io.Writer, result *schema.CheckResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	header := []string{"source", "passed", "composite", "band", "score", "value", "threshold"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, v := range result.Violations {
			rec := []string{
				result.Source,
				strconv.FormatBool(result.Passed),
				fmtFloat(result.Composite),
				string(result.Band),
				violationName(v),
				fmtFloat(v.Score),
				fmtFloat(v.Threshold),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeCheckText prints the check result in a concise format suitable for CI/CD.
func writeCheckText(w io.Writer, result *schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	if _, err := fmt.Fprintln(w, "Gait Check Results:"); err != nil {
		return err
	}

	// Labels and values for dynamic padding
	labels := []string{"Source:", "Composite:", "Thresholds:"}
	values := []string{
		contract.TruncatePath(result.Source, getMaxSourceWidth(cfg)),
		fmt.Sprintf("%s [%s]%s", fmtFloat(result.Composite), bandLabel(result.Composite, cfg), compositeNote(result.Warnings)),
		formatThresholds(result, fmtFloat),
	}
	maxLabelLen := 0
	for _, label := range labels {
		maxLabelLen = max(maxLabelLen, len(label))
	}
	for i, label := range labels {
		if _, err := fmt.Fprintf(w, "  %-*s %s\n", maxLabelLen+1, label, values[i]); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\nChecked in %v\n\n", duration); err != nil {
		return err
	}

	if result.Passed {
		if _, err := fmt.Fprintln(w, "✅ All scores passed gait checks"); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "❌ Gait check failed: %d violation(s)\n", len(result.Violations)); err != nil {
			return err
		}
		for _, v := range result.Violations {
			if _, err := fmt.Fprintf(w, "  - %s (score: %s < threshold: %s)\n",
				violationName(v), fmtFloat(v.Score), fmtFloat(v.Threshold)); err != nil {
				return err
			}
		}
	}

	for _, code := range result.Warnings {
		if _, err := fmt.Fprintf(w, "  ⚠️  %s: %s\n", code, schema.FlagWarnings[code]); err != nil {
			return err
		}
	}
	return nil
}

// formatThresholds lists the configured minimums in report order.
func formatThresholds(result *schema.CheckResult, fmtFloat func(float64) string) string {
	var parts []string
	if result.MinComposite > 0 {
		parts = append(parts, "composite="+fmtFloat(result.MinComposite))
	}
	for _, key := range schema.ScoredMetrics {
		if v, ok := result.MinSubScores[key]; ok {
			parts = append(parts, fmt.Sprintf("%s=%s", key, fmtFloat(v)))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
