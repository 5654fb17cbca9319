package cmd

import (
	"github.com/spf13/cobra"

	"github.com/qixiboss/gaitscore/core"
)

// checkCmd focused on threshold gating.
var checkCmd = &cobra.Command{
	Use:   "check <joint-log>",
	Short: "Fail with a non-zero exit code when scores fall below minimums",
	Long: `Analyze a joint log and compare the composite and sub-scores against minimums.

Designed for batch screening and pipelines: the command exits 1 when any configured
minimum is violated. Absent metrics are never counted as violations, but their
confidence flags are reported as warnings.

Without any minimum the check always passes.

Examples:
  # Require a composite of at least 60
  gaitscore check walk.txt --min-composite 60

  # Also gate individual sub-scores
  gaitscore check walk.txt --min-composite 60 --min-subscores "gait_speed:6,avg_step_length:5"`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteCheck(rootCtx, cfg, cacheManager, writer)
	},
}
