package schema

import "time"

// AbortedBand is stored for sessions whose analysis failed before scoring.
const AbortedBand Band = "aborted"

// SessionSummary is written when a session finishes.
type SessionSummary struct {
	EndTime    time.Time
	FrameCount int
	FPS        float64
	Composite  float64
	Band       Band
}

// SessionRecord represents a row from the gaitscore_sessions table.
type SessionRecord struct {
	SessionID     int64
	SessionUUID   string
	Source        string
	Subject       *string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	FrameCount    *int32
	FPS           *float64
	Composite     *float64
	Band          *string
	ConfigParams  *string
}

// MetricScoreRecord represents a row from the gaitscore_metric_scores table.
type MetricScoreRecord struct {
	SessionID int64
	MetricKey string
	Value     float64
	Present   bool
	SubScore  *float64
	Weight    *float64
}
