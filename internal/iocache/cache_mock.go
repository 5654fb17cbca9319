package iocache

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/qixiboss/gaitscore/internal/contract"
	"github.com/qixiboss/gaitscore/schema"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetFrameStore implements the CacheManager interface.
func (m *MockCacheManager) GetFrameStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetHistoryStore implements the CacheManager interface.
func (m *MockCacheManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	data, _ := args.Get(0).([]byte)
	return data, args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, data []byte, version int, ts int64) error {
	args := m.Called(key, data, version, ts)
	return args.Error(0)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginSession implements the HistoryStore interface.
func (m *MockHistoryStore) BeginSession(startTime time.Time, sessionUUID, source, subject string, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, sessionUUID, source, subject, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndSession implements the HistoryStore interface.
func (m *MockHistoryStore) EndSession(sessionID int64, summary schema.SessionSummary) error {
	args := m.Called(sessionID, summary)
	return args.Error(0)
}

// RecordMetricScore implements the HistoryStore interface.
func (m *MockHistoryStore) RecordMetricScore(sessionID int64, key schema.MetricKey, metric schema.Metric, subScore *schema.SubScore) error {
	args := m.Called(sessionID, key, metric, subScore)
	return args.Error(0)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// GetAllSessions implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllSessions() ([]schema.SessionRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.SessionRecord)
	return records, args.Error(1)
}

// GetAllMetricScores implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllMetricScores() ([]schema.MetricScoreRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.MetricScoreRecord)
	return records, args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
