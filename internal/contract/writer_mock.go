package contract

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/qixiboss/gaitscore/schema"
)

// MockResultWriter is a mock implementation of ResultWriter for testing.
type MockResultWriter struct {
	mock.Mock
}

var _ ResultWriter = &MockResultWriter{} // Compile-time check

// WriteAnalysis implements the ResultWriter interface.
func (m *MockResultWriter) WriteAnalysis(result *schema.AnalysisResult, cfg *Config, duration time.Duration) error {
	args := m.Called(result, cfg, duration)
	return args.Error(0)
}

// WriteCheck implements the ResultWriter interface.
func (m *MockResultWriter) WriteCheck(result *schema.CheckResult, cfg *Config, duration time.Duration) error {
	args := m.Called(result, cfg, duration)
	return args.Error(0)
}

// WriteSignals implements the ResultWriter interface.
func (m *MockResultWriter) WriteSignals(signals *schema.SignalSet, cfg *Config) error {
	args := m.Called(signals, cfg)
	return args.Error(0)
}

// WritePolicies implements the ResultWriter interface.
func (m *MockResultWriter) WritePolicies(policies schema.PolicySet, cfg *Config) error {
	args := m.Called(policies, cfg)
	return args.Error(0)
}
