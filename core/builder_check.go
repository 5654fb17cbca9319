package core

import (
	"context"
	"fmt"

	"github.com/qixiboss/gaitscore/internal/contract"
	"github.com/qixiboss/gaitscore/schema"
)

// CheckResultBuilder builds the check result using a builder pattern.
type CheckResultBuilder struct {
	cfg        *contract.Config
	mgr        contract.CacheManager
	ctx        context.Context
	analysis   *schema.AnalysisResult
	violations []schema.CheckViolation
	result     *schema.CheckResult
}

// NewCheckResultBuilder creates a new builder for check results.
func NewCheckResultBuilder(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) *CheckResultBuilder {
	return &CheckResultBuilder{
		cfg: cfg,
		mgr: mgr,
		ctx: ctx,
	}
}

// ValidatePrerequisites validates that the check has something to gate on.
func (b *CheckResultBuilder) ValidatePrerequisites() (*CheckResultBuilder, error) {
	if b.cfg.InputPath == "" {
		return nil, fmt.Errorf("check command requires a joint log. Example: gaitscore check walk.txt --min-composite 60")
	}
	if b.cfg.MinComposite <= 0 && len(b.cfg.MinSubScores) == 0 {
		return nil, fmt.Errorf("check command requires --min-composite or --min-subscores. Example: gaitscore check walk.txt --min-subscores gait_speed:5")
	}
	return b, nil
}

// RunAnalysis performs the full gait analysis.
func (b *CheckResultBuilder) RunAnalysis() (*CheckResultBuilder, error) {
	result, err := GetAnalysisResult(b.ctx, b.cfg, b.mgr)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze joint log: %w. Verify the log holds pelvis and ankle samples", err)
	}
	b.analysis = result
	return b, nil
}

// ComputeViolations compares the composite and sub-scores against their minimums.
func (b *CheckResultBuilder) ComputeViolations() *CheckResultBuilder {
	b.violations = []schema.CheckViolation{}
	if b.analysis.Composite < b.cfg.MinComposite {
		b.violations = append(b.violations, schema.CheckViolation{
			Score:     b.analysis.Composite,
			Threshold: b.cfg.MinComposite,
		})
	}

	// Walk in report order so the output is stable
	for _, key := range schema.ScoredMetrics {
		threshold, ok := b.cfg.MinSubScores[key]
		if !ok {
			continue
		}
		score := b.analysis.SubScores[key].Score
		if score < threshold {
			b.violations = append(b.violations, schema.CheckViolation{
				Key:       key,
				Score:     score,
				Threshold: threshold,
			})
		}
	}
	return b
}

// BuildResult constructs the final CheckResult.
func (b *CheckResultBuilder) BuildResult() *CheckResultBuilder {
	b.result = &schema.CheckResult{
		Passed:       len(b.violations) == 0,
		Source:       b.analysis.Source,
		Composite:    b.analysis.Composite,
		Band:         b.analysis.Band,
		MinComposite: b.cfg.MinComposite,
		MinSubScores: b.cfg.MinSubScores,
		Violations:   b.violations,
		Warnings:     b.analysis.Flags.Codes(),
	}
	return b
}

// GetResult returns the built CheckResult.
func (b *CheckResultBuilder) GetResult() *schema.CheckResult {
	return b.result
}
