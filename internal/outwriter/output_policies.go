package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/qixiboss/gaitscore/internal/contract"
	"github.com/qixiboss/gaitscore/schema"
)

// policyRow is one scoring policy with its weight share of the composite.
type policyRow struct {
	schema.ScoringPolicy
	Unit        string  `json:"unit"`
	WeightShare float64 `json:"weight_pct"`
}

// policiesRenderModel is the complete description of the scoring model.
type policiesRenderModel struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Policies    []policyRow `json:"policies"`
	Bands       []bandRow   `json:"bands"`
}

// bandRow describes one interpretation band.
type bandRow struct {
	Band           schema.Band `json:"band"`
	MinComposite   float64     `json:"min_composite"`
	Interpretation string      `json:"interpretation"`
}

// buildPoliciesRenderModel lists policies in report order with normalized weights.
func buildPoliciesRenderModel(policies schema.PolicySet) *policiesRenderModel {
	total := policies.TotalWeight()
	rows := make([]policyRow, 0, len(policies))
	for _, key := range schema.ScoredMetrics {
		p, ok := policies[key]
		if !ok {
			continue
		}
		row := policyRow{ScoringPolicy: p, Unit: schema.MetricUnits[key]}
		if total > 0 {
			row.WeightShare = p.Weight / total * 100
		}
		rows = append(rows, row)
	}

	return &policiesRenderModel{
		Title:       "Gait Scoring Policies",
		Description: "Composite = 10 x weighted mean of 0-10 sub-scores over the present metrics",
		Policies:    rows,
		Bands: []bandRow{
			{Band: schema.HealthyBand, MinComposite: schema.HealthyThreshold, Interpretation: schema.BandInterpretations[schema.HealthyBand]},
			{Band: schema.MildBand, MinComposite: schema.MildThreshold, Interpretation: schema.BandInterpretations[schema.MildBand]},
			{Band: schema.ModerateBand, MinComposite: schema.ModerateThreshold, Interpretation: schema.BandInterpretations[schema.ModerateBand]},
			{Band: schema.HighBand, MinComposite: 0, Interpretation: schema.BandInterpretations[schema.HighBand]},
		},
	}
}

// WritePoliciesDefinitions displays the scoring policies with weights normalized to percentages.
// This is a static display that does not require a joint log.
func WritePoliciesDefinitions(policies schema.PolicySet, cfg *contract.Config) error {
	model := buildPoliciesRenderModel(policies)

	switch cfg.Output {
	case schema.JSONOut, schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePoliciesCSV(w, model, cfg)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePoliciesText(w, model, cfg)
		}, "Wrote text")
	}
}

// writePoliciesCSV writes one row per policy.
func writePoliciesCSV(w io.Writer, model *policiesRenderModel, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	header := []string{"metric", "lo", "hi", "unit", "lower_is_better", "weight", "weight_pct", "description"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, p := range model.Policies {
			rec := []string{
				string(p.Key),
				fmtFloat(p.Lo),
				fmtFloat(p.Hi),
				p.Unit,
				strconv.FormatBool(p.LowerIsBetter),
				fmtFloat(p.Weight),
				fmtFloat(p.WeightShare),
				p.Description,
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// writePoliciesText displays policies and bands in human-readable text format.
func writePoliciesText(w io.Writer, model *policiesRenderModel, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	if _, err := fmt.Fprintf(w, "🚶 %s\n%s\n\n", model.Title, model.Description); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Healthy Range", "Weight", "Share", "Description"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignLeft
	})
	var data [][]string
	for _, p := range model.Policies {
		data = append(data, []string{
			metricName(p.Key, cfg),
			formatRange(p.ScoringPolicy, fmtFloat),
			fmtFloat(p.Weight),
			fmtFloat(p.WeightShare) + "%",
			p.Description,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "\nBands:"); err != nil {
		return err
	}
	for _, b := range model.Bands {
		if _, err := fmt.Fprintf(w, "  %-9s >= %5s  %s\n", b.Band, fmtFloat(b.MinComposite), b.Interpretation); err != nil {
			return err
		}
	}
	return nil
}
