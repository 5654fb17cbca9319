package mcp_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qixiboss/gaitscore/internal/contract"
	mcp_internal "github.com/qixiboss/gaitscore/internal/mcp"
	"github.com/qixiboss/gaitscore/schema"
)

func baseConfig() *contract.Config {
	return &contract.Config{
		Units:     schema.AutoUnits,
		Params:    schema.DefaultParams(),
		Precision: 2,
	}
}

// writePelvisLog writes a one-second log where only the pelvis moves, at 1.2 m/s.
func writePelvisLog(t *testing.T) string {
	t.Helper()
	var sb strings.Builder
	for f := 0; f <= 30; f++ {
		fmt.Fprintf(&sb, "Frame: %d\nJoint 0: %.4f, 0.9000, 1.0000\n", f, 1.2*float64(f)/30)
	}
	path := filepath.Join(t.TempDir(), "pelvis.txt")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
	return path
}

func callTool(t *testing.T, cfg *contract.Config, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(cfg, nil)
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func resultText(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func TestAnalyzeGait(t *testing.T) {
	res := callTool(t, baseConfig(), "analyze_gait", map[string]any{"path": writePelvisLog(t)})
	require.False(t, res.IsError, resultText(res))

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &doc))
	assert.EqualValues(t, 31, doc["frame_count"])

	speed := doc["metrics"].(map[string]any)["gait_speed"].(map[string]any)
	assert.Equal(t, true, speed["present"])
	assert.InDelta(t, 1.2, speed["value"].(float64), 1e-3)
	assert.NotEmpty(t, doc["warnings"])
	assert.NotEmpty(t, doc["interpretation"])
}

func TestAnalyzeGaitValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{name: "missing path", args: map[string]any{}, want: "path is required"},
		{name: "bad units", args: map[string]any{"path": "walk.txt", "units": "feet"}, want: "invalid units"},
		{name: "missing file", args: map[string]any{"path": "/missing/walk.txt"}, want: "analysis failed"},
		{name: "bad fps", args: map[string]any{"path": writePelvisLog(t), "fps": -5.0}, want: "analysis failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, baseConfig(), "analyze_gait", tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, resultText(res), tt.want)
		})
	}
}

func TestGetPolicies(t *testing.T) {
	cfg := baseConfig()
	cfg.Policies = schema.DefaultPolicies()
	p := cfg.Policies[schema.GaitSpeed]
	p.Weight = 4
	cfg.Policies[schema.GaitSpeed] = p

	res := callTool(t, cfg, "get_policies", nil)
	require.False(t, res.IsError)

	var policies []schema.ScoringPolicy
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &policies))
	require.Len(t, policies, len(schema.ScoredMetrics))
	assert.Equal(t, schema.GaitSpeed, policies[0].Key)
	assert.Equal(t, 4.0, policies[0].Weight)
}

func TestScoreMetrics(t *testing.T) {
	res := callTool(t, baseConfig(), "score_metrics", map[string]any{
		"metrics": `{"gait_speed": 1.3, "avg_trunk_flexion": 5}`,
	})
	require.False(t, res.IsError, resultText(res))

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &doc))
	assert.Equal(t, 100.0, doc["composite"])
	assert.Equal(t, "healthy", doc["band"])
	assert.Len(t, doc["sub_scores"], 2)
	assert.Equal(t, "Gait pattern within healthy range", doc["interpretation"])
}

func TestScoreMetricsErrors(t *testing.T) {
	tests := []struct {
		name    string
		metrics any
		want    string
	}{
		{name: "missing", metrics: "", want: "metrics is required"},
		{name: "bad json", metrics: "{gait_speed", want: "invalid metrics JSON"},
		{name: "unknown metric", metrics: `{"cadence": 100}`, want: "unknown metric 'cadence'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, baseConfig(), "score_metrics", map[string]any{"metrics": tt.metrics})
			assert.True(t, res.IsError)
			assert.Contains(t, resultText(res), tt.want)
		})
	}
}
