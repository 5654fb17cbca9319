package schema

import "time"

// CacheStatus represents the status of the frame cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// HistoryStatus represents the status of the session history store.
type HistoryStatus struct {
	Backend         string           `json:"backend"`
	Connected       bool             `json:"connected"`
	TotalSessions   int              `json:"total_sessions"`
	LastSessionID   int64            `json:"last_session_id"`
	LastSessionTime time.Time        `json:"last_session_time"`
	OldestTime      time.Time        `json:"oldest_session_time"`
	TotalFrames     int64            `json:"total_frames"`
	TableSizes      map[string]int64 `json:"table_sizes"`
}
