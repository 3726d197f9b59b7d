// Package tools implements the MCP tools backed by the Limelink API.
package tools

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"limelink-mcp/internal/limelink"
)

const (
	CreateLinkName      = "create-link"
	GetLinkBySuffixName = "get-link-by-suffix"
	GetLinkByURLName    = "get-link-by-url"
)

const (
	errAPIKeyMissing    = "Error: LIMELINK_API_KEY is not configured. Set the LIMELINK_API_KEY environment variable to use this tool."
	errProjectIDMissing = "Error: project_id is required. Provide it as a parameter or set LIMELINK_PROJECT_ID environment variable."
)

// Tools holds what the tool handlers need. A nil client means no API key
// was configured; the tools stay listed but every call fails.
type Tools struct {
	client    limelink.Client
	projectID string
}

func New(client limelink.Client, defaultProjectID string) *Tools {
	return &Tools{
		client:    client,
		projectID: defaultProjectID,
	}
}

// Register adds all tools to s.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(createLinkTool(), t.CreateLink)
	s.AddTool(getLinkBySuffixTool(), t.GetLinkBySuffix)
	s.AddTool(getLinkByURLTool(), t.GetLinkByURL)
}

// resolveProjectID prefers the explicit argument over the configured default.
func (t *Tools) resolveProjectID(arg string) (string, bool) {
	if arg != "" {
		return arg, true
	}
	return t.projectID, t.projectID != ""
}

// jsonResult renders an API response the way a human would read it.
func jsonResult(raw json.RawMessage) *mcp.CallToolResult {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return mcp.NewToolResultText(string(raw))
	}
	return mcp.NewToolResultText(buf.String())
}

func errorf(format string, args ...any) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf(format, args...))
}
