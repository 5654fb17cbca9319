package core

import (
	"context"
	"sync"
	"time"

	"github.com/qixiboss/gaitscore/schema"
)

// Analyze runs the gait pipeline on an analysis context.
// Speed, arm swing and trunk flexion run alongside strike detection and the
// step parameters that depend on it. The store is only read.
func Analyze(ctx context.Context, actx *AnalysisContext) (*schema.AnalysisResult, error) {
	if actx == nil || actx.store.Len() == 0 {
		return nil, ErrEmptyStore
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	store, params := actx.store, actx.params

	type calcOutput struct {
		metrics schema.MetricSet
		flags   schema.ConfidenceFlags
	}
	var speed, arms, trunk, steps calcOutput
	var strikes schema.StrikeSet

	var wg sync.WaitGroup
	wg.Go(func() {
		speed.metrics, speed.flags = ComputeGaitSpeed(store, params)
	})
	wg.Go(func() {
		arms.metrics, arms.flags = ComputeArmSwing(store, params)
	})
	wg.Go(func() {
		trunk.metrics, trunk.flags = ComputeTrunkFlexion(store, params)
	})
	wg.Go(func() {
		left := ExtractAnkleHeight(store, schema.Left, params.Axes)
		right := ExtractAnkleHeight(store, schema.Right, params.Axes)
		strikes = DetectStrikes(left, right, params)
		steps.metrics, steps.flags = ComputeStepParameters(store, strikes, params)
	})
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	metrics := make(schema.MetricSet, len(schema.ScoredMetrics))
	var flags schema.ConfidenceFlags
	for _, out := range []calcOutput{speed, steps, arms, trunk} {
		for k, v := range out.metrics {
			metrics[k] = v
		}
		flags = flags.Merge(out.flags)
	}

	summary := Score(metrics, actx.policies)
	first, _ := store.First()
	last, _ := store.Last()

	return &schema.AnalysisResult{
		SessionID:    sessionUUIDFromContext(ctx),
		Source:       actx.source,
		AnalyzedAt:   time.Now(),
		FPS:          params.FPS,
		FrameCount:   store.Len(),
		FirstFrame:   first,
		LastFrame:    last,
		Strikes:      strikes,
		Metrics:      metrics,
		Supplemental: supplementalMetrics(first, last, strikes, params),
		Flags:        flags,
		SubScores:    summary.SubScores,
		Composite:    summary.Composite,
		Band:         summary.Band,
	}, nil
}

// supplementalMetrics computes the unscored summary metrics.
func supplementalMetrics(first, last int, strikes schema.StrikeSet, params schema.AnalysisParams) schema.MetricSet {
	ms := schema.MetricSet{
		schema.LeftSteps:  schema.Measured(float64(len(strikes.Left))),
		schema.RightSteps: schema.Measured(float64(len(strikes.Right))),
		schema.Duration:   schema.Absent(),
		schema.Cadence:    schema.Absent(),
	}
	duration := float64(last-first) / params.FPS
	if duration > 0 {
		ms[schema.Duration] = schema.Measured(duration)
		if strikes.Total() > 0 {
			ms[schema.Cadence] = schema.Measured(float64(strikes.Total()) / duration * 60)
		}
	}
	return ms
}
