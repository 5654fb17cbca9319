// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/qixiboss/gaitscore/internal/contract"
	"github.com/qixiboss/gaitscore/schema"
)

// OutWriter writes results to stdout or the configured output file.
type OutWriter struct{}

var _ contract.ResultWriter = &OutWriter{} // Compile-time check

// NewOutWriter returns a ResultWriter for command output.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteAnalysis writes a gait report.
func (ow *OutWriter) WriteAnalysis(result *schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	return WriteAnalysisResult(result, cfg, duration)
}

// WriteCheck writes the outcome of a threshold check.
func (ow *OutWriter) WriteCheck(result *schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	return WriteCheckResult(result, cfg, duration)
}

// WriteSignals writes the strike signal plot.
func (ow *OutWriter) WriteSignals(signals *schema.SignalSet, cfg *contract.Config) error {
	return WriteSignalPlot(signals, cfg)
}

// WritePolicies writes the scoring policy table.
func (ow *OutWriter) WritePolicies(policies schema.PolicySet, cfg *contract.Config) error {
	return WritePoliciesDefinitions(policies, cfg)
}
