// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/qixiboss/gaitscore/schema"
)

// CacheManager defines the interface for managing the frame cache and session history.
// This allows the storage layer to be mocked for testing.
type CacheManager interface {
	GetFrameStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for key/value cache storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking analysis sessions and their scores.
type HistoryStore interface {
	// BeginSession creates a new session row and returns its ID
	BeginSession(startTime time.Time, sessionUUID, source, subject string, configParams map[string]any) (int64, error)

	// EndSession updates the session row with completion data
	EndSession(sessionID int64, summary schema.SessionSummary) error

	// RecordMetricScore stores a metric and its sub-score, if scored
	RecordMetricScore(sessionID int64, key schema.MetricKey, metric schema.Metric, subScore *schema.SubScore) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllSessions returns every stored session ordered by ID
	GetAllSessions() ([]schema.SessionRecord, error)

	// GetAllMetricScores returns every stored metric row ordered by session
	GetAllMetricScores() ([]schema.MetricScoreRecord, error)

	// Close closes the underlying connection
	Close() error
}

// ResultWriter renders results in the configured output format.
// This allows the core orchestration to be tested without touching stdout.
type ResultWriter interface {
	WriteAnalysis(result *schema.AnalysisResult, cfg *Config, duration time.Duration) error
	WriteCheck(result *schema.CheckResult, cfg *Config, duration time.Duration) error
	WriteSignals(signals *schema.SignalSet, cfg *Config) error
	WritePolicies(policies schema.PolicySet, cfg *Config) error
}
