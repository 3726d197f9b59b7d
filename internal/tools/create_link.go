package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"limelink-mcp/internal/limelink"
)

func platformProperties(platform string) map[string]any {
	return map[string]any{
		"application_id": map[string]any{
			"type":        "string",
			"maxLength":   100,
			"description": platform + " application ID registered in the dashboard",
		},
		"request_uri": map[string]any{
			"type":        "string",
			"description": "Deep link path inside the app",
		},
		"not_installed_options": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"custom_url": map[string]any{
					"type":        "string",
					"maxLength":   500,
					"description": "Redirect URL when the app is not installed",
				},
			},
			"required": []string{"custom_url"},
		},
	}
}

func createLinkTool() mcp.Tool {
	return mcp.NewTool(CreateLinkName,
		mcp.WithDescription("Create a Limelink dynamic link with platform-specific deep linking, social previews, and UTM tracking"),
		mcp.WithString("dynamic_link_suffix",
			mcp.Required(),
			mcp.MaxLength(50),
			mcp.Description("Unique identifier for the short URL path"),
		),
		mcp.WithString("dynamic_link_url",
			mcp.Required(),
			mcp.MaxLength(500),
			mcp.Description("Target URL for desktop or fallback"),
		),
		mcp.WithString("dynamic_link_name",
			mcp.Required(),
			mcp.MaxLength(100),
			mcp.Description("Link name for management and identification"),
		),
		mcp.WithString("project_id",
			mcp.Description("Project ID the link belongs to. Uses LIMELINK_PROJECT_ID env if not provided."),
		),
		mcp.WithBoolean("stats_flag",
			mcp.Description("Enable analytics tracking"),
		),
		mcp.WithObject("apple_options",
			mcp.Description("iOS-specific deep linking options"),
			mcp.Properties(platformProperties("iOS")),
		),
		mcp.WithObject("android_options",
			mcp.Description("Android-specific deep linking options"),
			mcp.Properties(platformProperties("Android")),
		),
		mcp.WithObject("additional_options",
			mcp.Description("Social preview and UTM tracking options"),
			mcp.Properties(map[string]any{
				"preview_title":       map[string]any{"type": "string", "maxLength": 100, "description": "Social preview title"},
				"preview_description": map[string]any{"type": "string", "maxLength": 200, "description": "Social preview description"},
				"preview_image_url":   map[string]any{"type": "string", "maxLength": 500, "description": "Social preview image URL"},
				"utm_source":          map[string]any{"type": "string", "description": "UTM source parameter"},
				"utm_medium":          map[string]any{"type": "string", "description": "UTM medium parameter"},
				"utm_campaign":        map[string]any{"type": "string", "description": "UTM campaign parameter"},
			}),
		),
	)
}

// CreateLink handles the create-link tool.
func (t *Tools) CreateLink(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.client == nil {
		return mcp.NewToolResultError(errAPIKeyMissing), nil
	}

	var body limelink.CreateLinkRequest
	if err := req.BindArguments(&body); err != nil {
		return errorf("Error: invalid arguments: %s", err), nil
	}

	projectID, ok := t.resolveProjectID(body.ProjectID)
	if !ok {
		return mcp.NewToolResultError(errProjectIDMissing), nil
	}
	body.ProjectID = projectID

	if err := body.Validate(); err != nil {
		return errorf("Error: invalid arguments: %s", err), nil
	}

	out, err := t.client.CreateLink(ctx, &body)
	if err != nil {
		return errorf("Error creating link: %s", err), nil
	}
	return jsonResult(out), nil
}
