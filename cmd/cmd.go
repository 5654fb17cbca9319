// Package cmd defines the command-line interface for gaitscore.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/qixiboss/gaitscore/internal/contract"
	"github.com/qixiboss/gaitscore/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(signalsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Float64("fps", schema.DefaultFPS, "Capture frame rate of the joint log")
	rootCmd.PersistentFlags().Float64("min-strike-spacing", schema.DefaultMinStrikeSpacingSec, "Minimum seconds between two strikes of the same foot")
	rootCmd.PersistentFlags().Float64("min-prominence", schema.DefaultMinProminence, "Minimum prominence of an ankle-height peak, in meters")
	rootCmd.PersistentFlags().Float64("arm-noise-floor", schema.DefaultArmNoiseFloor, "Arm swing range below which swing is undetectable, in meters")
	rootCmd.PersistentFlags().String("height-axis", "z", "Axis used for ankle height: x or y or z")
	rootCmd.PersistentFlags().String("vertical-axis", "y", "Axis used as vertical for trunk flexion: x or y or z")
	rootCmd.PersistentFlags().String("horizontal-axes", "x,z", "Two axes spanning the ground plane")
	rootCmd.PersistentFlags().String("units", string(schema.AutoUnits), "Coordinate units of the joint log: auto or m or mm")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Parse cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("history-backend", "", "Session history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for session history (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of analyzeCmd to Viper
	analyzeCmd.Flags().Int("explain", contract.DefaultExplain, "Number of deficit drivers to explain (0 disables)")
	analyzeCmd.Flags().String("subject", "", "Optional subject label stored with the session history")
	if err := viper.BindPFlags(analyzeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analyze flags", err)
	}

	// Bind all flags of signalsCmd to Viper
	signalsCmd.Flags().String("format", string(schema.HTMLPlot), "Plot format: html or png")
	if err := viper.BindPFlags(signalsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding signals flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().Float64("min-composite", 0, "Minimum composite score (0-100) for the check to pass")
	checkCmd.Flags().String("min-subscores", "", "Minimum sub-scores (format: 'gait_speed:6,avg_step_length:5')")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Bind all flags of historyListCmd to Viper
	historyListCmd.Flags().Int("limit", 20, "Number of recent sessions to list (0 = all)")
	if err := viper.BindPFlags(historyListCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history list flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
