package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"limelink-mcp/internal/linkurl"
)

const errSuffixFormat = "Error: Could not extract suffix from URL \"%s\". Expected formats:\n" +
	"- https://deep.limelink.org/{suffix}\n" +
	"- https://{project}.limelink.org/link/{suffix}"

func getLinkBySuffixTool() mcp.Tool {
	return mcp.NewTool(GetLinkBySuffixName,
		mcp.WithDescription("Look up a Limelink dynamic link by its suffix"),
		mcp.WithString("suffix",
			mcp.Required(),
			mcp.Description("Dynamic link suffix to look up"),
		),
		mcp.WithString("project_id",
			mcp.Description("Project ID. Uses LIMELINK_PROJECT_ID env if not provided."),
		),
	)
}

func getLinkByURLTool() mcp.Tool {
	return mcp.NewTool(GetLinkByURLName,
		mcp.WithDescription("Look up a Limelink dynamic link by its full URL. Supports both Free (deep.limelink.org) and Pro ({project}.limelink.org/link/) URL formats."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Full Limelink dynamic link URL to look up"),
		),
		mcp.WithString("project_id",
			mcp.Description("Project ID. Uses LIMELINK_PROJECT_ID env if not provided."),
		),
	)
}

// GetLinkBySuffix handles the get-link-by-suffix tool.
func (t *Tools) GetLinkBySuffix(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.client == nil {
		return mcp.NewToolResultError(errAPIKeyMissing), nil
	}

	suffix, err := req.RequireString("suffix")
	if err != nil || suffix == "" {
		return mcp.NewToolResultError("Error: suffix is required"), nil
	}

	return t.lookup(ctx, req.GetString("project_id", ""), suffix), nil
}

// GetLinkByURL handles the get-link-by-url tool. The suffix is taken from
// the URL before the project is resolved.
func (t *Tools) GetLinkByURL(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.client == nil {
		return mcp.NewToolResultError(errAPIKeyMissing), nil
	}

	rawURL, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("Error: url is required"), nil
	}

	suffix, ok := linkurl.ExtractSuffix(rawURL)
	if !ok {
		return errorf(errSuffixFormat, rawURL), nil
	}

	return t.lookup(ctx, req.GetString("project_id", ""), suffix), nil
}

func (t *Tools) lookup(ctx context.Context, projectArg, suffix string) *mcp.CallToolResult {
	projectID, ok := t.resolveProjectID(projectArg)
	if !ok {
		return mcp.NewToolResultError(errProjectIDMissing)
	}

	out, err := t.client.GetLinkBySuffix(ctx, projectID, suffix)
	if err != nil {
		return errorf("Error fetching link: %s", err)
	}
	return jsonResult(out)
}
