// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/qixiboss/gaitscore/internal/contract"
)

// NewMCPServer initializes and configures the gaitscore MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Gaitscore Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: analyze_gait ---
	s.AddTool(mcp.NewTool("analyze_gait",
		mcp.WithDescription("Analyze a 3D joint position log and score the gait on a 0-100 scale."),
		mcp.WithString("path", mcp.Description("Path to the joint log."), mcp.Required()),
		mcp.WithNumber("fps", mcp.Description("Capture rate of the log. Defaults to the configured fps.")),
		mcp.WithString("units", mcp.Description("Coordinate units of the log."), mcp.Enum("auto", "m", "mm")),
	), h.handleAnalyzeGait)

	// --- 2. Tool: get_policies ---
	s.AddTool(mcp.NewTool("get_policies",
		mcp.WithDescription("List the healthy ranges and weights used to score each metric."),
	), h.handleGetPolicies)

	// --- 3. Tool: score_metrics ---
	s.AddTool(mcp.NewTool("score_metrics",
		mcp.WithDescription("Score precomputed gait metrics without a joint log."),
		mcp.WithString("metrics", mcp.Description(`JSON object of metric values, e.g. {"gait_speed": 1.1, "avg_trunk_flexion": 12}.`), mcp.Required()),
	), h.handleScoreMetrics)

	return s
}

// StartMCPServer starts the gaitscore MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
