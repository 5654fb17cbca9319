// Package parquet provides data structures and functions for exporting gaitscore
// sessions and reports to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/qixiboss/gaitscore/schema"
)

// Session represents a single recorded analysis session.
// This struct maps to the gaitscore_sessions database table.
type Session struct {
	// SessionID is the unique identifier for this session
	SessionID int64 `parquet:"session_id,snappy"`

	// SessionUUID ties the row to the session_id of a JSON report
	SessionUUID string `parquet:"session_uuid,snappy"`

	// Source is the joint log that was analyzed
	Source string `parquet:"source,snappy"`

	// Subject is the optional subject label (nullable)
	Subject *string `parquet:"subject,optional,snappy"`

	// StartTime is when the session began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the session completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the session in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// FrameCount is the number of frames analyzed (nullable)
	FrameCount *int32 `parquet:"frame_count,optional,snappy"`

	// FPS is the capture rate the session assumed (nullable)
	FPS *float64 `parquet:"fps,optional,snappy"`

	// Composite is the 0-100 composite score (nullable)
	Composite *float64 `parquet:"composite,optional,snappy"`

	// Band is the interpretation band of the composite (nullable)
	Band *string `parquet:"band,optional,snappy"`

	// ConfigParams contains the JSON-encoded analysis parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// MetricScore represents one metric of a recorded session.
// This struct maps to the gaitscore_metric_scores database table.
type MetricScore struct {
	SessionID int64    `parquet:"session_id,snappy"`
	MetricKey string   `parquet:"metric_key,snappy"`
	Value     float64  `parquet:"value,snappy"`
	Present   bool     `parquet:"present,snappy"`
	SubScore  *float64 `parquet:"sub_score,optional,snappy"`
	Weight    *float64 `parquet:"weight,optional,snappy"`
}

// ReportMetric is one metric row of a single analysis report.
type ReportMetric struct {
	SessionUUID string   `parquet:"session_uuid,snappy"`
	Source      string   `parquet:"source,snappy"`
	MetricKey   string   `parquet:"metric_key,snappy"`
	Unit        string   `parquet:"unit,snappy"`
	Value       float64  `parquet:"value,snappy"`
	Present     bool     `parquet:"present,snappy"`
	Scored      bool     `parquet:"scored,snappy"`
	SubScore    *float64 `parquet:"sub_score,optional,snappy"`
	Weight      *float64 `parquet:"weight,optional,snappy"`
	Composite   float64  `parquet:"composite,snappy"`
	Band        string   `parquet:"band,snappy"`
}

// Strike is one detected heel strike of a single analysis report.
type Strike struct {
	SessionUUID string  `parquet:"session_uuid,snappy"`
	Side        string  `parquet:"side,snappy"`
	Frame       int32   `parquet:"frame,snappy"`
	TimeSec     float64 `parquet:"time_s,snappy"`
}

// Write encodes rows to w using the schema inferred from T's struct tags.
func Write[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteFile writes rows to a new Parquet file at outputPath.
func WriteFile[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Write(file, rows); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// ReadFile reads every row of a Parquet file written by WriteFile.
func ReadFile[T any](path string) ([]T, error) {
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file %s: %w", path, err)
	}
	return rows, nil
}

// ConvertSessionRecords converts stored session rows for Parquet export.
func ConvertSessionRecords(records []schema.SessionRecord) []Session {
	result := make([]Session, len(records))
	for i, record := range records {
		result[i] = Session{
			SessionID:     record.SessionID,
			SessionUUID:   record.SessionUUID,
			Source:        record.Source,
			Subject:       record.Subject,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			FrameCount:    record.FrameCount,
			FPS:           record.FPS,
			Composite:     record.Composite,
			Band:          record.Band,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertMetricScoreRecords converts stored metric rows for Parquet export.
func ConvertMetricScoreRecords(records []schema.MetricScoreRecord) []MetricScore {
	result := make([]MetricScore, len(records))
	for i, record := range records {
		result[i] = MetricScore{
			SessionID: record.SessionID,
			MetricKey: record.MetricKey,
			Value:     record.Value,
			Present:   record.Present,
			SubScore:  record.SubScore,
			Weight:    record.Weight,
		}
	}
	return result
}

// ReportMetrics flattens the scored and supplemental metrics of a result.
func ReportMetrics(result *schema.AnalysisResult) []ReportMetric {
	rows := make([]ReportMetric, 0, len(schema.ScoredMetrics)+len(schema.SupplementalMetrics))
	add := func(key schema.MetricKey, m schema.Metric, scored bool) {
		row := ReportMetric{
			SessionUUID: result.SessionID,
			Source:      result.Source,
			MetricKey:   string(key),
			Unit:        schema.MetricUnits[key],
			Value:       m.Value,
			Present:     m.Present,
			Scored:      scored,
			Composite:   result.Composite,
			Band:        string(result.Band),
		}
		if s, ok := result.SubScores[key]; ok {
			score, weight := s.Score, s.Weight
			row.SubScore, row.Weight = &score, &weight
		}
		rows = append(rows, row)
	}
	for _, key := range schema.ScoredMetrics {
		add(key, result.Metrics.Get(key), true)
	}
	for _, key := range schema.SupplementalMetrics {
		add(key, result.Supplemental.Get(key), false)
	}
	return rows
}

// ReportStrikes lists the strikes of a result, left side first.
func ReportStrikes(result *schema.AnalysisResult) []Strike {
	rows := make([]Strike, 0, result.Strikes.Total())
	for _, side := range schema.Sides {
		for _, frame := range result.Strikes.Side(side) {
			var ts float64
			if result.FPS > 0 {
				ts = float64(frame) / result.FPS
			}
			rows = append(rows, Strike{
				SessionUUID: result.SessionID,
				Side:        side.String(),
				Frame:       int32(frame),
				TimeSec:     ts,
			})
		}
	}
	return rows
}
