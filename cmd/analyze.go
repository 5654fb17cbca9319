package cmd

import (
	"github.com/spf13/cobra"

	"github.com/qixiboss/gaitscore/core"
)

// analyzeCmd runs the full gait pipeline on one joint log.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <joint-log>",
	Short: "Score a recorded walk (metrics, sub-scores, composite and band)",
	Long: `Parse a joint log, detect heel strikes and compute the gait metrics.

Each metric is scored 0-10 against its healthy range, and the present sub-scores
are combined into a weighted 0-100 composite with an interpretation band:
  healthy  >= 80
  mild     >= 60
  moderate >= 40
  high      < 40

Metrics that cannot be measured are reported as absent with a confidence flag,
and the composite is renormalized over the metrics that are present.

Examples:
  # Text report with the top 3 deficit drivers
  gaitscore analyze walk.txt

  # Recording in millimeters at 60 fps, saved as JSON
  gaitscore analyze walk.txt --units mm --fps 60 --output json --output-file report.json

  # Record the session for a subject
  gaitscore analyze walk.txt --history-backend sqlite --subject patient-7`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteAnalyze(rootCtx, cfg, cacheManager, writer)
	},
}
