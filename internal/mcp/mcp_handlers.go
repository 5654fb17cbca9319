package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/qixiboss/gaitscore/core"
	"github.com/qixiboss/gaitscore/internal/contract"
	"github.com/qixiboss/gaitscore/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// scoreReport is the response of score_metrics.
type scoreReport struct {
	schema.ScoreSummary
	Interpretation string `json:"interpretation"`
}

// analysisReport is the response of analyze_gait.
type analysisReport struct {
	*schema.AnalysisResult
	Interpretation string               `json:"interpretation"`
	Warnings       []schema.FlagWarning `json:"warnings"`
}

func (h *toolHandler) policies() schema.PolicySet {
	if h.baseCfg.Policies != nil {
		return h.baseCfg.Policies
	}
	return schema.DefaultPolicies()
}

func (h *toolHandler) handleAnalyzeGait(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputPath = request.GetString("path", "")
	if cfg.InputPath == "" {
		return mcp.NewToolResultError("path is required"), nil
	}
	if fps := request.GetFloat("fps", 0); fps != 0 {
		cfg.Params.FPS = fps
	}
	if u := request.GetString("units", ""); u != "" {
		units := schema.Units(strings.ToLower(u))
		if _, ok := schema.ValidUnits[units]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid units '%s'. must be auto, m, mm", u)), nil
		}
		cfg.Units = units
	}
	cfg.Policies = h.policies()

	result, err := core.GetAnalysisResult(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(analysisReport{
		AnalysisResult: result,
		Interpretation: schema.BandInterpretations[result.Band],
		Warnings:       result.Flags.Warnings(),
	}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetPolicies(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	policies := h.policies()
	ordered := make([]schema.ScoringPolicy, 0, len(policies))
	for _, key := range schema.ScoredMetrics {
		if p, ok := policies[key]; ok {
			ordered = append(ordered, p)
		}
	}
	jsonData, _ := json.MarshalIndent(ordered, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleScoreMetrics(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := request.GetString("metrics", "")
	if raw == "" {
		return mcp.NewToolResultError("metrics is required"), nil
	}
	var values map[string]float64
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid metrics JSON: %v", err)), nil
	}

	metrics := make(schema.MetricSet, len(values))
	for name, v := range values {
		key := schema.MetricKey(name)
		if !key.IsScored() {
			return mcp.NewToolResultError(fmt.Sprintf("unknown metric '%s'", name)), nil
		}
		metrics[key] = schema.Measured(v)
	}

	summary := core.Score(metrics, h.policies())
	jsonData, _ := json.MarshalIndent(scoreReport{
		ScoreSummary:   summary,
		Interpretation: schema.BandInterpretations[summary.Band],
	}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
