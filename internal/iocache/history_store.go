package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/qixiboss/gaitscore/internal/contract"
	"github.com/qixiboss/gaitscore/schema"
)

// Table names for session history.
const (
	sessionsTable     = "gaitscore_sessions"
	metricScoresTable = "gaitscore_metric_scores"
)

// historyTables lists the history tables in creation order.
var historyTables = []string{sessionsTable, metricScoresTable}

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDatabase(backend, connStr, GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables creates the session history tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	queries := map[string]string{
		sessionsTable:     getCreateSessionsQuery(backend),
		metricScoresTable: getCreateMetricScoresQuery(backend),
	}
	for _, table := range historyTables {
		if _, err := db.Exec(queries[table]); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table, err)
		}
	}
	return nil
}

// getCreateSessionsQuery returns the CREATE TABLE query for gaitscore_sessions.
func getCreateSessionsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(sessionsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				session_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				session_uuid VARCHAR(36) NOT NULL,
				source VARCHAR(1024) NOT NULL,
				subject VARCHAR(255),
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				frame_count INT,
				fps DOUBLE,
				composite DOUBLE,
				band VARCHAR(20),
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				session_id BIGSERIAL PRIMARY KEY,
				session_uuid TEXT NOT NULL,
				source TEXT NOT NULL,
				subject TEXT,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				frame_count INT,
				fps DOUBLE PRECISION,
				composite DOUBLE PRECISION,
				band TEXT,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				session_id INTEGER PRIMARY KEY AUTOINCREMENT,
				session_uuid TEXT NOT NULL,
				source TEXT NOT NULL,
				subject TEXT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				frame_count INTEGER,
				fps REAL,
				composite REAL,
				band TEXT,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateMetricScoresQuery returns the CREATE TABLE query for gaitscore_metric_scores.
func getCreateMetricScoresQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(metricScoresTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				session_id BIGINT NOT NULL,
				metric_key VARCHAR(64) NOT NULL,
				metric_value DOUBLE NOT NULL,
				present BOOLEAN NOT NULL,
				sub_score DOUBLE,
				weight DOUBLE,
				PRIMARY KEY (session_id, metric_key)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				session_id BIGINT NOT NULL,
				metric_key TEXT NOT NULL,
				metric_value DOUBLE PRECISION NOT NULL,
				present BOOLEAN NOT NULL,
				sub_score DOUBLE PRECISION,
				weight DOUBLE PRECISION,
				PRIMARY KEY (session_id, metric_key)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				session_id INTEGER NOT NULL,
				metric_key TEXT NOT NULL,
				metric_value REAL NOT NULL,
				present INTEGER NOT NULL,
				sub_score REAL,
				weight REAL,
				PRIMARY KEY (session_id, metric_key)
			);
		`, quotedTableName)
	}
}

// BeginSession creates a new session row and returns its ID.
func (hs *HistoryStoreImpl) BeginSession(startTime time.Time, sessionUUID, source, subject string, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	var subjectArg any
	if subject != "" {
		subjectArg = subject
	}

	query := fmt.Sprintf(`INSERT INTO %s (session_uuid, source, subject, start_time, config_params) VALUES (%s)`,
		quoteTableName(sessionsTable, hs.backend), placeholderList(hs.backend, 5))
	args := []any{sessionUUID, source, subjectArg, formatTime(startTime, hs.backend), string(configJSON)}

	var sessionID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		err = hs.db.QueryRow(query+" RETURNING session_id", args...).Scan(&sessionID)
	default: // SQLite and MySQL
		var result sql.Result
		result, err = hs.db.Exec(query, args...)
		if err == nil {
			sessionID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert session: %w", err)
	}
	return sessionID, nil
}

// EndSession updates the session with its completion data.
func (hs *HistoryStoreImpl) EndSession(sessionID int64, summary schema.SessionSummary) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(sessionsTable, hs.backend)

	var start timeScanner
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE session_id = %s`, quotedTableName, placeholder(hs.backend, 1))
	if err := hs.db.QueryRow(query, sessionID).Scan(&start); err != nil {
		return fmt.Errorf("failed to get start_time for session %d: %w", sessionID, err)
	}
	durationMs := summary.EndTime.Sub(start.Time).Milliseconds()

	p := func(n int) string { return placeholder(hs.backend, n) }
	update := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, frame_count = %s, fps = %s, composite = %s, band = %s WHERE session_id = %s`,
		quotedTableName, p(1), p(2), p(3), p(4), p(5), p(6), p(7))
	_, err := hs.db.Exec(update,
		formatTime(summary.EndTime, hs.backend), durationMs, summary.FrameCount,
		summary.FPS, summary.Composite, string(summary.Band), sessionID)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

// RecordMetricScore stores one metric of a session with its sub-score, if any.
func (hs *HistoryStoreImpl) RecordMetricScore(sessionID int64, key schema.MetricKey, metric schema.Metric, subScore *schema.SubScore) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	var score, weight any
	if subScore != nil {
		score, weight = subScore.Score, subScore.Weight
	}

	query := fmt.Sprintf(`INSERT INTO %s (session_id, metric_key, metric_value, present, sub_score, weight) VALUES (%s)`,
		quoteTableName(metricScoresTable, hs.backend), placeholderList(hs.backend, 6))
	if _, err := hs.db.Exec(query, sessionID, string(key), metric.Value, metric.Present, score, weight); err != nil {
		return fmt.Errorf("failed to insert metric score %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	quotedSessions := quoteTableName(sessionsTable, hs.backend)
	countQuery := fmt.Sprintf("SELECT COUNT(*), COALESCE(SUM(frame_count), 0) FROM %s", quotedSessions)
	if err := hs.db.QueryRow(countQuery).Scan(&status.TotalSessions, &status.TotalFrames); err != nil {
		return status, fmt.Errorf("failed to get total sessions: %w", err)
	}

	if status.TotalSessions > 0 {
		var last, oldest timeScanner
		lastQuery := fmt.Sprintf("SELECT session_id, start_time FROM %s ORDER BY session_id DESC LIMIT 1", quotedSessions)
		if err := hs.db.QueryRow(lastQuery).Scan(&status.LastSessionID, &last); err != nil {
			return status, fmt.Errorf("failed to get last session info: %w", err)
		}
		oldestQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY session_id ASC LIMIT 1", quotedSessions)
		if err := hs.db.QueryRow(oldestQuery).Scan(&oldest); err != nil {
			return status, fmt.Errorf("failed to get oldest session time: %w", err)
		}
		status.LastSessionTime = last.Time
		status.OldestTime = oldest.Time
	}

	for _, table := range historyTables {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend))
		if err := hs.db.QueryRow(query).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	return status, nil
}

// GetAllSessions retrieves all sessions ordered by ID.
func (hs *HistoryStoreImpl) GetAllSessions() ([]schema.SessionRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT session_id, session_uuid, source, subject, start_time, end_time,
		run_duration_ms, frame_count, fps, composite, band, config_params
		FROM %s ORDER BY session_id`, quoteTableName(sessionsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SessionRecord
	for rows.Next() {
		var record schema.SessionRecord
		var start, end timeScanner
		if err := rows.Scan(&record.SessionID, &record.SessionUUID, &record.Source, &record.Subject,
			&start, &end, &record.RunDurationMs, &record.FrameCount, &record.FPS,
			&record.Composite, &record.Band, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		record.StartTime = start.Time
		record.EndTime = end.ptr()
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}
	return results, nil
}

// GetAllMetricScores retrieves all metric rows ordered by session and key.
func (hs *HistoryStoreImpl) GetAllMetricScores() ([]schema.MetricScoreRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT session_id, metric_key, metric_value, present, sub_score, weight
		FROM %s ORDER BY session_id, metric_key`, quoteTableName(metricScoresTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query metric scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.MetricScoreRecord
	for rows.Next() {
		var record schema.MetricScoreRecord
		if err := rows.Scan(&record.SessionID, &record.MetricKey, &record.Value,
			&record.Present, &record.SubScore, &record.Weight); err != nil {
			return nil, fmt.Errorf("failed to scan metric score: %w", err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating metric scores: %w", err)
	}
	return results, nil
}
