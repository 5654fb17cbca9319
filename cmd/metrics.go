package cmd

import (
	"github.com/spf13/cobra"

	"github.com/qixiboss/gaitscore/core"
	"github.com/qixiboss/gaitscore/internal/contract"
)

// metricsCmd displays the scoring policies of every metric.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display healthy ranges and weights for every scored metric",
	Long: `Show the scoring policy of every metric and the interpretation bands.

Provides complete transparency into how a walk is scored, including:
- Healthy range and direction of each metric
- Weight and share of the composite
- Band thresholds and their interpretations
- Custom ranges and weights if configured via .gaitscore.yaml

No joint log is read - this is purely informational.

Examples:
  # Show default scoring policies
  gaitscore metrics

  # View with custom policies from config file
  gaitscore metrics --config .gaitscore.yaml`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg, cacheManager, writer); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
