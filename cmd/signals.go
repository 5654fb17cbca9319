package cmd

import (
	"github.com/spf13/cobra"

	"github.com/qixiboss/gaitscore/core"
)

// signalsCmd plots the strike detection signals.
var signalsCmd = &cobra.Command{
	Use:   "signals <joint-log>",
	Short: "Plot ankle height with detected heel strikes",
	Long: `Extract the left and right ankle height signals and mark every detected heel strike.

Use this to check the strike detector on a recording before trusting the step metrics,
and to tune --min-prominence and --min-strike-spacing.

The plot is written to --output-file, or to <joint-log>_signals.<format> by default.

Examples:
  # Interactive HTML chart
  gaitscore signals walk.txt

  # Static PNG image
  gaitscore signals walk.txt --format png --output-file walk.png`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteSignals(rootCtx, cfg, cacheManager, writer)
	},
}
