// Package prompts holds the guided workflows offered to MCP clients.
package prompts

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	CreateDynamicLinkName = "create-dynamic-link"
	SetupDeepLinkingName  = "setup-deep-linking"
)

var (
	linkPlatforms  = []string{"ios", "android", "both", "web"}
	setupPlatforms = []string{"ios", "android", "both"}
)

var validate = validator.New()

// Register adds both prompts to s.
func Register(s *server.MCPServer) {
	s.AddPrompt(createDynamicLinkPrompt(), CreateDynamicLink)
	s.AddPrompt(setupDeepLinkingPrompt(), SetupDeepLinking)
}

func enumArg(args map[string]string, name string, allowed []string) (string, error) {
	v := args[name]
	if v == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	if !slices.Contains(allowed, v) {
		return "", fmt.Errorf("invalid %s %q: must be one of %s", name, v, strings.Join(allowed, ", "))
	}
	return v, nil
}

func userPrompt(description, text string) *mcp.GetPromptResult {
	return mcp.NewGetPromptResult(description, []mcp.PromptMessage{
		mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
	})
}
