// Package mcpserver assembles the limelink MCP server.
package mcpserver

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"limelink-mcp/internal/limelink"
	"limelink-mcp/internal/metrics"
	"limelink-mcp/internal/prompts"
	"limelink-mcp/internal/resources"
	"limelink-mcp/internal/tools"
	"limelink-mcp/pkg/logging/logging"
)

const (
	Name    = "limelink"
	Version = "1.0.0"
)

type Deps struct {
	// Client is nil when no API key is configured.
	Client    limelink.Client
	ProjectID string
	Docs      resources.DocSource
	Logger    *zap.Logger
}

// New builds the server and registers every tool, resource and prompt.
func New(d Deps) *server.MCPServer {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := server.NewMCPServer(Name, Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
		server.WithToolHandlerMiddleware(observeTools(logger)),
		server.WithRecovery(),
	)

	tools.New(d.Client, d.ProjectID).Register(s)
	resources.NewDocs(d.Docs).Register(s)
	prompts.Register(s)

	return s
}

// observeTools logs every tool call and counts its outcome.
func observeTools(logger *zap.Logger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			toolLogger := logger.With(zap.String("tool", req.Params.Name))
			ctx = logging.WithLogger(ctx, toolLogger)

			res, err := next(ctx, req)

			outcome := "ok"
			if err != nil || (res != nil && res.IsError) {
				outcome = "error"
			}
			metrics.ToolCallsTotal.WithLabelValues(req.Params.Name, outcome).Inc()

			toolLogger.Info("tool call",
				zap.String("outcome", outcome),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err),
			)
			return res, err
		}
	}
}
