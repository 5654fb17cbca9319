// Package core has core logic for gait analysis, scoring and orchestration.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/qixiboss/gaitscore/internal/contract"
	"github.com/qixiboss/gaitscore/schema"
)

// ExecutorFunc defines the function signature for executing a gaitscore command.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, w contract.ResultWriter) error

// errNoInput is returned when a command needs a joint log but none was given.
var errNoInput = errors.New("a joint log path is required. Example: gaitscore analyze walk.txt")

// ExecuteAnalyze runs the full pipeline on the configured joint log and writes the report.
// It serves as the main entry point for the 'analyze' command.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, w contract.ResultWriter) error {
	start := time.Now()
	result, err := GetAnalysisResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return w.WriteAnalysis(result, cfg, time.Since(start))
}

// ExecuteSignals extracts the strike signals of the configured joint log and plots them.
func ExecuteSignals(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, w contract.ResultWriter) error {
	signals, err := GetSignals(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return w.WriteSignals(signals, cfg)
}

// ExecuteMetrics prints the active scoring policies.
func ExecuteMetrics(_ context.Context, cfg *contract.Config, _ contract.CacheManager, w contract.ResultWriter) error {
	policies := cfg.Policies
	if policies == nil {
		policies = schema.DefaultPolicies()
	}
	return w.WritePolicies(policies, cfg)
}

// GetAnalysisResult loads, analyzes and scores the configured joint log.
// The session is recorded in the history store when one is configured.
func GetAnalysisResult(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.AnalysisResult, error) {
	actx, err := loadAnalysisContext(ctx, cfg, mgr)
	if err != nil {
		return nil, err
	}
	return runTrackedAnalysis(ctx, cfg, actx, mgr)
}

// GetSignals returns the ankle height traces and the strikes detected on them.
func GetSignals(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.SignalSet, error) {
	actx, err := loadAnalysisContext(ctx, cfg, mgr)
	if err != nil {
		return nil, err
	}
	store, params := actx.store, actx.params
	left := ExtractAnkleHeight(store, schema.Left, params.Axes)
	right := ExtractAnkleHeight(store, schema.Right, params.Axes)
	strikes := DetectStrikes(left, right, params)

	return &schema.SignalSet{
		Source: actx.source,
		FPS:    params.FPS,
		Left:   signalTrace(schema.Left, left, strikes.Left),
		Right:  signalTrace(schema.Right, right, strikes.Right),
	}, nil
}

// loadAnalysisContext loads the joint log and validates it with the configured parameters.
func loadAnalysisContext(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*AnalysisContext, error) {
	if cfg.InputPath == "" {
		return nil, errNoInput
	}
	store, summary, err := LoadFrameStore(ctx, cfg, mgr)
	if err != nil {
		return nil, fmt.Errorf("failed to load joint log %q: %w", cfg.InputPath, err)
	}
	if !shouldSuppressHeader(ctx) {
		contract.LogInfo("Loaded joint log",
			"path", cfg.InputPath,
			"frames", summary.Frames,
			"samples", summary.JointSamples,
			"skipped", summary.SkippedLines,
			"units", summary.DetectedUnits)
	}
	return NewAnalysisContext(store, cfg.Params, cfg.Policies, cfg.InputPath)
}

// runTrackedAnalysis wraps Analyze with session history tracking.
func runTrackedAnalysis(ctx context.Context, cfg *contract.Config, actx *AnalysisContext, mgr contract.CacheManager) (*schema.AnalysisResult, error) {
	startTime := time.Now()
	sessionUUID := uuid.NewString()
	ctx = withSessionUUID(ctx, sessionUUID)

	// --- 0. Begin Session Tracking (if configured) ---
	var history contract.HistoryStore
	if mgr != nil {
		history = mgr.GetHistoryStore()
	}
	var sessionID int64
	if history != nil {
		configParams := map[string]any{
			"fps":                actx.params.FPS,
			"min_strike_spacing": actx.params.MinStrikeSpacingSec,
			"min_prominence":     actx.params.MinProminence,
			"arm_noise_floor":    actx.params.ArmNoiseFloor,
			"axes":               actx.params.Axes,
			"units":              string(cfg.Units),
		}
		var err error
		sessionID, err = history.BeginSession(startTime, sessionUUID, actx.source, cfg.Subject, configParams)
		if err != nil {
			contract.LogWarn("Session tracking initialization failed", err)
		}
	}

	// --- 1. Core Analysis ---
	result, err := Analyze(ctx, actx)
	if err != nil {
		if history != nil && sessionID > 0 {
			summary := schema.SessionSummary{
				EndTime:    time.Now(),
				FrameCount: actx.store.Len(),
				FPS:        actx.params.FPS,
				Band:       schema.AbortedBand,
			}
			if endErr := history.EndSession(sessionID, summary); endErr != nil {
				contract.LogWarn("Failed to finalize aborted session", endErr)
			}
		}
		return nil, err
	}

	// --- 2. Record Scores and End Session Tracking ---
	if history != nil && sessionID > 0 {
		recordSessionScores(history, sessionID, result)
		summary := schema.SessionSummary{
			EndTime:    time.Now(),
			FrameCount: result.FrameCount,
			FPS:        result.FPS,
			Composite:  result.Composite,
			Band:       result.Band,
		}
		if err := history.EndSession(sessionID, summary); err != nil {
			contract.LogWarn("Failed to finalize session tracking", err)
		}
	}
	return result, nil
}

// recordSessionScores stores every scored and supplemental metric of a result.
func recordSessionScores(history contract.HistoryStore, sessionID int64, result *schema.AnalysisResult) {
	for _, key := range schema.ScoredMetrics {
		var sub *schema.SubScore
		if s, ok := result.SubScores[key]; ok {
			sub = &s
		}
		if err := history.RecordMetricScore(sessionID, key, result.Metrics.Get(key), sub); err != nil {
			logTrackingError(key, err)
		}
	}
	for _, key := range schema.SupplementalMetrics {
		if err := history.RecordMetricScore(sessionID, key, result.Supplemental.Get(key), nil); err != nil {
			logTrackingError(key, err)
		}
	}
}

// logTrackingError logs database tracking errors without disrupting analysis.
func logTrackingError(key schema.MetricKey, err error) {
	contract.LogWarn(fmt.Sprintf("Session tracking failed for metric %s", key), err)
}

// signalTrace converts a series and its strike frames into a plot trace.
func signalTrace(side schema.Side, s Series, strikes []int) schema.SignalTrace {
	frames := make([]int, s.Len())
	for i, ref := range s.Refs {
		frames[i] = ref.Frame
	}
	return schema.SignalTrace{
		Side:    side,
		Frames:  frames,
		Values:  append([]float64(nil), s.Values...),
		Strikes: append([]int(nil), strikes...),
	}
}
