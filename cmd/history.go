package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/qixiboss/gaitscore/internal/contract"
	"github.com/qixiboss/gaitscore/internal/iocache"
	"github.com/qixiboss/gaitscore/schema"
)

// historyBackendConfig reads and validates the history backend settings.
// An empty backend is treated as the none backend.
func historyBackendConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.NoneBackend
	if backendStr := viper.GetString("history-backend"); backendStr != "" {
		backend = schema.DatabaseBackend(backendStr)
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("history-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	backend, connStr, err := historyBackendConfig()
	if err != nil {
		return err
	}

	// Initialize stores with the loaded config (no parse cache for history commands)
	if err := iocache.InitStores(schema.NoneBackend, "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// It does NOT initialize stores, so migrations can run on a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := historyBackendConfig()
	if err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyStore returns the configured history store or an error when tracking is off.
func historyStore() (contract.HistoryStore, error) {
	store := iocache.Manager.GetHistoryStore()
	if store == nil {
		return nil, fmt.Errorf("history tracking is disabled. Set --history-backend to enable it")
	}
	return store, nil
}

// historyCmd focused on session history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup used by analysis commands. This avoids joint log validation
// and complex config processing for simple storage operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded gait sessions and exports",
	Long: `Manage the session history used for follow-up and longitudinal review.

When enabled, gaitscore records every analyze and check run, storing:
- Session metadata (timestamp, source, subject, parameters, duration)
- Every metric value with its sub-score and weight
- The composite score and risk band

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled by default)

Subcommands:
  status  - Show history statistics
  list    - List recent sessions
  export  - Export sessions to Parquet for analytics
  clear   - Remove all recorded sessions
  migrate - Run database schema migrations

Examples:
  # Record sessions in SQLite
  gaitscore analyze walk.txt --history-backend sqlite --subject patient-7

  # List what was recorded
  gaitscore history list --history-backend sqlite`,
}

// historyClearCmd clears the session history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded sessions",
	Long: `Delete all stored sessions and metric scores.

WARNING: This action cannot be undone. Consider exporting data first.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the history tables

Examples:
  # Export before clearing
  gaitscore history export --history-backend sqlite --output-file backup
  gaitscore history clear --history-backend sqlite`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("Session history cleared successfully.")
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display session history statistics and connection details",
	Long: `Show detailed information about the session history.

Displays:
- Backend type and connection status
- Total number of sessions stored
- Last and oldest session timestamps
- Total frames analyzed across all sessions
- Database table sizes

Examples:
  # Check history status
  gaitscore history status --history-backend sqlite`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := historyStore()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyListCmd lists recent sessions.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sessions with their composite and band",
	Long: `List the most recent sessions, newest first.

Sessions that never finished are shown with the band "open".

Examples:
  # Last 20 sessions
  gaitscore history list --history-backend sqlite

  # Every session
  gaitscore history list --history-backend sqlite --limit 0`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := historyStore()
		if err != nil {
			contract.LogFatal("Failed to list sessions", err)
		}
		sessions, err := store.GetAllSessions()
		if err != nil {
			contract.LogFatal("Failed to list sessions", err)
		}
		if err := iocache.PrintSessions(os.Stdout, sessions, viper.GetInt("limit")); err != nil {
			contract.LogFatal("Failed to list sessions", err)
		}
	},
}

// historyExportCmd exports session history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export session history to Parquet for analytics",
	Long: `Export all stored sessions to Parquet format for use with analytics tools.

Exports two datasets:
- <output-file>.sessions.parquet - one row per session
- <output-file>.metric_scores.parquet - one row per metric per session

Requires: --output-file parameter

Examples:
  # Export all data
  gaitscore history export --history-backend sqlite --output-file gait

  # Use with DuckDB for analysis
  duckdb -c "SELECT * FROM read_parquet('gait.sessions.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExportHistory(os.Stdout, iocache.Manager.GetHistoryStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the session history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  gaitscore history migrate --history-backend sqlite

  # Rollback to initial state
  gaitscore history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(os.Stdout, cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
