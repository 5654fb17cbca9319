package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/qixiboss/gaitscore/core/algo"
	"github.com/qixiboss/gaitscore/internal/contract"
	"github.com/qixiboss/gaitscore/internal/parquet"
	"github.com/qixiboss/gaitscore/schema"
)

// Suffixes of the files written for parquet output.
const (
	metricsParquetSuffix = ".metrics.parquet"
	strikesParquetSuffix = ".strikes.parquet"
)

// jsonAnalysis is the JSON document of an analysis report.
type jsonAnalysis struct {
	*schema.AnalysisResult
	Label          string                    `json:"label"`
	Interpretation string                    `json:"interpretation"`
	Warnings       []schema.FlagWarning      `json:"warnings"`
	Explain        []schema.EnrichedSubScore `json:"explain,omitempty"`
}

// WriteAnalysisResult outputs an analysis report, dispatching based on the output format configured.
func WriteAnalysisResult(result *schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.ParquetOut:
		if err := writeAnalysisParquet(result, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		return nil
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisJSON(w, result, cfg)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
		return nil
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisCSV(w, result, cfg)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisText(w, result, cfg, duration)
		}, "Wrote report")
	}
}

// explainDrivers returns the top deficit drivers requested by --explain.
func explainDrivers(result *schema.AnalysisResult, cfg *contract.Config) []schema.EnrichedSubScore {
	if cfg.Explain <= 0 {
		return nil
	}
	return schema.EnrichSubScores(algo.RankDeficits(result.OrderedSubScores(), cfg.Explain))
}

// writeAnalysisJSON writes the report as a single JSON document.
func writeAnalysisJSON(w io.Writer, result *schema.AnalysisResult, cfg *contract.Config) error {
	return writeJSON(w, jsonAnalysis{
		AnalysisResult: result,
		Label:          contract.GetPlainLabel(result.Composite),
		Interpretation: schema.BandInterpretations[result.Band],
		Warnings:       result.Flags.Warnings(),
		Explain:        explainDrivers(result, cfg),
	})
}

// writeAnalysisCSV writes one row per metric, scored metrics first.
func writeAnalysisCSV(w io.Writer, result *schema.AnalysisResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	header := []string{
		"session_id",
		"source",
		"metric",
		"unit",
		"value",
		"present",
		"scored",
		"sub_score",
		"weight",
		"composite",
		"band",
		"flags",
	}
	flags := joinCodes(result.Flags.Codes())
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, row := range parquet.ReportMetrics(result) {
			var subScore, weight string
			if row.SubScore != nil {
				subScore = fmtFloat(*row.SubScore)
				weight = fmtFloat(*row.Weight)
			}
			value := ""
			if row.Present {
				value = fmtFloat(row.Value)
			}
			rec := []string{
				row.SessionUUID,
				row.Source,
				row.MetricKey,
				row.Unit,
				value,
				strconv.FormatBool(row.Present),
				strconv.FormatBool(row.Scored),
				subScore,
				weight,
				fmtFloat(row.Composite),
				row.Band,
				flags,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeAnalysisParquet writes the metric and strike tables next to each other.
func writeAnalysisParquet(result *schema.AnalysisResult, prefix string) error {
	if prefix == "" {
		return fmt.Errorf("parquet output requires an output file prefix")
	}
	metricsPath := prefix + metricsParquetSuffix
	if err := parquet.WriteFile(parquet.ReportMetrics(result), metricsPath); err != nil {
		return err
	}
	strikesPath := prefix + strikesParquetSuffix
	if err := parquet.WriteFile(parquet.ReportStrikes(result), strikesPath); err != nil {
		return err
	}
	contract.LogInfo("Wrote Parquet report", "metrics", metricsPath, "strikes", strikesPath)
	return nil
}

// writeAnalysisText generates and writes the human-readable report.
func writeAnalysisText(w io.Writer, result *schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	if _, err := fmt.Fprintf(w, "Gait report: %s\n", contract.TruncatePath(result.Source, getMaxSourceWidth(cfg))); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Session %s: %d frames (%d-%d) at %s fps, %s s\n\n",
		result.SessionID, result.FrameCount, result.FirstFrame, result.LastFrame,
		fmtFloat(result.FPS), fmtFloat(result.Duration())); err != nil {
		return err
	}

	if err := writeMetricsTable(w, result, cfg, fmtFloat); err != nil {
		return err
	}
	if err := writeSupplementalTable(w, result, fmtFloat, intFmt); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nComposite: %s / 100 [%s] %s%s\n",
		fmtFloat(result.Composite), bandLabel(result.Composite, cfg), schema.BandInterpretations[result.Band],
		compositeNote(result.Flags.Codes())); err != nil {
		return err
	}

	if warnings := result.Flags.Warnings(); len(warnings) > 0 {
		if _, err := fmt.Fprintln(w, "\nWarnings:"); err != nil {
			return err
		}
		for _, warn := range warnings {
			if _, err := fmt.Fprintf(w, "  ⚠️  %s: %s\n", warn.Code, warn.Message); err != nil {
				return err
			}
		}
	}

	if cfg.Explain > 0 {
		if err := writeExplain(w, explainDrivers(result, cfg), cfg, fmtFloat); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nAnalysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return err
}

// writeMetricsTable renders the scored metrics with their sub-scores.
func writeMetricsTable(w io.Writer, result *schema.AnalysisResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value", "Healthy Range", "Sub-score", "Weight", "Status"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, key := range schema.ScoredMetrics {
		row := []string{
			string(key),
			formatMetric(result.Metrics.Get(key), fmtFloat),
			"",
			"-",
			"-",
			"-",
		}
		if p, ok := cfg.Policies[key]; ok {
			row[2] = formatRange(p, fmtFloat)
		}
		if s, ok := result.SubScores[key]; ok {
			row[3] = fmtFloat(s.Score)
			row[4] = fmtFloat(s.Weight)
			row[5] = schema.GetSubScoreStatus(s.Score)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeSupplementalTable renders the unscored metrics.
func writeSupplementalTable(w io.Writer, result *schema.AnalysisResult, fmtFloat func(float64) string, intFmt string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Supplemental", "Value", "Unit"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, key := range schema.SupplementalMetrics {
		m := result.Supplemental.Get(key)
		value := formatMetric(m, fmtFloat)
		if m.Present && (key == schema.LeftSteps || key == schema.RightSteps) {
			value = fmt.Sprintf(intFmt, int(m.Value))
		}
		data = append(data, []string{string(key), value, schema.MetricUnits[key]})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeExplain lists the sub-scores that cost the composite the most.
func writeExplain(w io.Writer, drivers []schema.EnrichedSubScore, cfg *contract.Config, fmtFloat func(float64) string) error {
	if len(drivers) == 0 {
		_, err := fmt.Fprintln(w, "\nNo deficit drivers: every sub-score is at 10")
		return err
	}
	if _, err := fmt.Fprintln(w, "\nTop deficit drivers:"); err != nil {
		return err
	}
	for _, d := range drivers {
		if _, err := fmt.Fprintf(w, "  %d. %s: %s/10 x %s weight (deficit %s, %s)\n",
			d.Rank, metricName(d.Key, cfg), fmtFloat(d.Score), fmtFloat(d.Weight), fmtFloat(d.Deficit()), d.Status); err != nil {
			return err
		}
	}
	return nil
}
