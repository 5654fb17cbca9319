package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/qixiboss/gaitscore/internal/contract"
	"github.com/qixiboss/gaitscore/internal/parquet"
)

// ExportHistory writes every stored session and metric row to Parquet files
// named <outputFile>.sessions.parquet and <outputFile>.metric_scores.parquet.
func ExportHistory(w io.Writer, store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history tracking is disabled. Set --history-backend to enable it")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalSessions == 0 {
		return errors.New("no session history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total sessions: %d\n", status.TotalSessions)
	_, _ = fmt.Fprintf(w, "Total metric records: %d\n", status.TableSizes[metricScoresTable])

	sessions, err := store.GetAllSessions()
	if err != nil {
		return fmt.Errorf("failed to retrieve sessions: %w", err)
	}
	scores, err := store.GetAllMetricScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve metric scores: %w", err)
	}

	sessionRows := parquet.ConvertSessionRecords(sessions)
	sessionsFile := outputFile + ".sessions.parquet"
	if err := parquet.WriteFile(sessionRows, sessionsFile); err != nil {
		return fmt.Errorf("failed to write sessions: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d sessions to: %s\n", len(sessionRows), sessionsFile)

	scoreRows := parquet.ConvertMetricScoreRecords(scores)
	scoresFile := outputFile + ".metric_scores.parquet"
	if err := parquet.WriteFile(scoreRows, scoresFile); err != nil {
		return fmt.Errorf("failed to write metric scores: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d metric records to: %s\n", len(scoreRows), scoresFile)
	return nil
}
