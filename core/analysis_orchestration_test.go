package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/qixiboss/gaitscore/internal/contract"
	"github.com/qixiboss/gaitscore/internal/iocache"
	"github.com/qixiboss/gaitscore/schema"
)

func testConfig(path string) *contract.Config {
	return &contract.Config{
		InputPath: path,
		Units:     schema.AutoUnits,
		Params:    schema.DefaultParams(),
		Policies:  schema.DefaultPolicies(),
		Precision: 2,
		Output:    schema.TextOut,
	}
}

func noStoresManager() *iocache.MockCacheManager {
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetFrameStore").Return(nil)
	mgr.On("GetHistoryStore").Return(nil)
	return mgr
}

func TestGetAnalysisResult_NoStores(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	cfg := testConfig(defaultWalk().writeLog(t))
	mgr := noStoresManager()

	result, err := GetAnalysisResult(ctx, cfg, mgr)
	require.NoError(t, err)
	assert.Equal(t, schema.HealthyBand, result.Band)
	assert.InDelta(t, 1.3, result.Metrics.Get(schema.GaitSpeed).Value, 1e-4)
	assert.InDelta(t, 0.78, result.Metrics.Get(schema.AvgStepLength).Value, 1e-4)
	assert.Equal(t, cfg.InputPath, result.Source)

	mgr.AssertExpectations(t)
}

func TestGetAnalysisResult_NilManager(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	result, err := GetAnalysisResult(ctx, testConfig(defaultWalk().writeLog(t)), nil)
	require.NoError(t, err)
	assert.Equal(t, 300, result.FrameCount)
}

func TestGetAnalysisResult_Errors(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())

	_, err := GetAnalysisResult(ctx, testConfig(""), nil)
	assert.True(t, errors.Is(err, errNoInput))

	_, err = GetAnalysisResult(ctx, testConfig("/no/such/walk.txt"), nil)
	assert.Error(t, err)

	cfg := testConfig(defaultWalk().writeLog(t))
	cfg.Params.FPS = 0
	_, err = GetAnalysisResult(ctx, cfg, nil)
	assert.True(t, errors.Is(err, schema.ErrInvalidParams))
}

func TestGetAnalysisResult_HistoryTracking(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	cfg := testConfig(defaultWalk().writeLog(t))
	cfg.Subject = "patient-7"

	history := &iocache.MockHistoryStore{}
	var sessionUUID string
	history.On("BeginSession", mock.AnythingOfType("time.Time"), mock.AnythingOfType("string"), cfg.InputPath, "patient-7", mock.Anything).
		Run(func(args mock.Arguments) { sessionUUID = args.String(1) }).
		Return(int64(7), nil)
	history.On("RecordMetricScore", int64(7), mock.Anything, mock.Anything, mock.Anything).Return(nil).
		Times(len(schema.ScoredMetrics) + len(schema.SupplementalMetrics))
	history.On("EndSession", int64(7), mock.MatchedBy(func(s schema.SessionSummary) bool {
		return s.FrameCount == 300 && s.Band == schema.HealthyBand
	})).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetFrameStore").Return(nil)
	mgr.On("GetHistoryStore").Return(history)

	result, err := GetAnalysisResult(ctx, cfg, mgr)
	require.NoError(t, err)
	assert.Equal(t, sessionUUID, result.SessionID, "the stored session id matches the result")

	history.AssertCalled(t, "RecordMetricScore", int64(7), schema.AvgArmSwing, schema.Absent(), (*schema.SubScore)(nil))
	history.AssertExpectations(t)
}

func TestGetAnalysisResult_HistoryBeginFails(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	cfg := testConfig(defaultWalk().writeLog(t))

	history := &iocache.MockHistoryStore{}
	history.On("BeginSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), errors.New("db down"))

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetFrameStore").Return(nil)
	mgr.On("GetHistoryStore").Return(history)

	result, err := GetAnalysisResult(ctx, cfg, mgr)
	require.NoError(t, err, "tracking failures never fail the analysis")
	assert.NotNil(t, result)
	history.AssertNotCalled(t, "RecordMetricScore", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	history.AssertNotCalled(t, "EndSession", mock.Anything, mock.Anything)
}

func TestRunTrackedAnalysis_ClosesSessionOnFailure(t *testing.T) {
	cfg := testConfig("walk.txt")
	actx, err := NewAnalysisContext(defaultWalk().store(), cfg.Params, nil, cfg.InputPath)
	require.NoError(t, err)

	history := &iocache.MockHistoryStore{}
	history.On("BeginSession", mock.Anything, mock.Anything, "walk.txt", mock.Anything, mock.Anything).
		Return(int64(9), nil)
	history.On("EndSession", int64(9), mock.MatchedBy(func(s schema.SessionSummary) bool {
		return s.Band == schema.AbortedBand && s.FrameCount == 300 && !s.EndTime.IsZero()
	})).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetHistoryStore").Return(history)

	ctx, cancel := context.WithCancel(WithSuppressHeader(context.Background()))
	cancel()
	result, err := runTrackedAnalysis(ctx, cfg, actx, mgr)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, context.Canceled))

	history.AssertNotCalled(t, "RecordMetricScore", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	history.AssertExpectations(t)
}

func TestLoadFrameStore_CacheMissThenHit(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(defaultWalk().writeLog(t))

	var stored []byte
	var storedKey string
	miss := &iocache.MockCacheStore{}
	miss.On("Get", mock.AnythingOfType("string")).Return(nil, 0, int64(0), errors.New("not found"))
	miss.On("Set", mock.AnythingOfType("string"), mock.Anything, currentCacheVersion, mock.AnythingOfType("int64")).
		Run(func(args mock.Arguments) {
			storedKey = args.String(0)
			stored = args.Get(1).([]byte)
		}).
		Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetFrameStore").Return(miss)

	first, summary, err := LoadFrameStore(ctx, cfg, mgr)
	require.NoError(t, err)
	require.NotEmpty(t, stored)
	assert.Equal(t, 300, summary.Frames)
	miss.AssertExpectations(t)

	hit := &iocache.MockCacheStore{}
	hit.On("Get", storedKey).Return(stored, currentCacheVersion, time.Now().Unix(), nil)
	mgrHit := &iocache.MockCacheManager{}
	mgrHit.On("GetFrameStore").Return(hit)

	second, summary2, err := LoadFrameStore(ctx, cfg, mgrHit)
	require.NoError(t, err)
	assert.Equal(t, first.Frames(), second.Frames())
	assert.Equal(t, summary, summary2)
	p1, _ := first.Position(150, schema.AnkleLeft)
	p2, _ := second.Position(150, schema.AnkleLeft)
	assert.Equal(t, p1, p2)
	hit.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLoadFrameStore_StaleEntry(t *testing.T) {
	cfg := testConfig(defaultWalk().writeLog(t))

	stale := &iocache.MockCacheStore{}
	stale.On("Get", mock.AnythingOfType("string")).Return([]byte(`{"frames":{}}`), currentCacheVersion-1, time.Now().Unix(), nil)
	stale.On("Set", mock.Anything, mock.Anything, currentCacheVersion, mock.Anything).Return(errors.New("read only"))

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetFrameStore").Return(stale)

	store, _, err := LoadFrameStore(context.Background(), cfg, mgr)
	require.NoError(t, err, "a failed cache write only warns")
	assert.Equal(t, 300, store.Len())
	stale.AssertExpectations(t)
}

func TestGenerateCacheKey(t *testing.T) {
	a := generateCacheKey([]byte("Frame: 0"), schema.AutoUnits)
	assert.Len(t, a, 64)
	assert.Equal(t, a, generateCacheKey([]byte("Frame: 0"), schema.AutoUnits))
	assert.NotEqual(t, a, generateCacheKey([]byte("Frame: 0"), schema.MillimeterUnits))
	assert.NotEqual(t, a, generateCacheKey([]byte("Frame: 1"), schema.AutoUnits))
}

func TestExecuteAnalyze(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	cfg := testConfig(defaultWalk().writeLog(t))

	w := &contract.MockResultWriter{}
	w.On("WriteAnalysis", mock.MatchedBy(func(r *schema.AnalysisResult) bool { return r.Band == schema.HealthyBand }), cfg, mock.AnythingOfType("time.Duration")).Return(nil)

	require.NoError(t, ExecuteAnalyze(ctx, cfg, noStoresManager(), w))
	w.AssertExpectations(t)
}

func TestExecuteAnalyze_WriterError(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	cfg := testConfig(defaultWalk().writeLog(t))

	w := &contract.MockResultWriter{}
	w.On("WriteAnalysis", mock.Anything, cfg, mock.Anything).Return(errors.New("broken pipe"))

	assert.Error(t, ExecuteAnalyze(ctx, cfg, nil, w))
}

func TestExecuteSignals(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	cfg := testConfig(defaultWalk().writeLog(t))

	var got *schema.SignalSet
	w := &contract.MockResultWriter{}
	w.On("WriteSignals", mock.AnythingOfType("*schema.SignalSet"), cfg).
		Run(func(args mock.Arguments) { got = args.Get(0).(*schema.SignalSet) }).
		Return(nil)

	require.NoError(t, ExecuteSignals(ctx, cfg, nil, w))
	require.NotNil(t, got)
	assert.Equal(t, schema.Left, got.Left.Side)
	assert.Len(t, got.Left.Frames, 300)
	assert.Len(t, got.Left.Values, 300)
	assert.Equal(t, []int{9, 45, 81, 117, 153, 189, 225, 261, 297}, got.Left.Strikes)
	assert.Len(t, got.Right.Strikes, 8)
	assert.Equal(t, schema.DefaultFPS, got.FPS)
}

func TestExecuteMetrics(t *testing.T) {
	cfg := testConfig("")
	cfg.Policies = nil

	w := &contract.MockResultWriter{}
	w.On("WritePolicies", schema.DefaultPolicies(), cfg).Return(nil)

	require.NoError(t, ExecuteMetrics(context.Background(), cfg, nil, w))
	w.AssertExpectations(t)
}
