package core

import (
	"context"
	"errors"
	"time"

	"github.com/qixiboss/gaitscore/internal/contract"
)

// ErrCheckFailed is returned when a score falls below its configured minimum.
var ErrCheckFailed = errors.New("gait check failed")

// ExecuteCheck runs the check command for CI-style gating.
// It analyzes the joint log, compares the scores against the configured minimums,
// and returns ErrCheckFailed if any score falls short.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, w contract.ResultWriter) error {
	start := time.Now()

	builder := NewCheckResultBuilder(ctx, cfg, mgr)

	// Validate prerequisites
	if _, err := builder.ValidatePrerequisites(); err != nil {
		return err
	}

	// Run analysis
	if _, err := builder.RunAnalysis(); err != nil {
		return err
	}

	result := builder.ComputeViolations().BuildResult().GetResult()
	if err := w.WriteCheck(result, cfg, time.Since(start)); err != nil {
		return err
	}
	if !result.Passed {
		return ErrCheckFailed
	}
	return nil
}
