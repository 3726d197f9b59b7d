package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

const createDynamicLinkDescription = "Guide for creating a Limelink dynamic link with platform-specific deep linking"

func createDynamicLinkPrompt() mcp.Prompt {
	return mcp.NewPrompt(CreateDynamicLinkName,
		mcp.WithPromptDescription(createDynamicLinkDescription),
		mcp.WithArgument("target_url",
			mcp.ArgumentDescription("The destination URL for the dynamic link"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("suffix",
			mcp.ArgumentDescription("Custom suffix for the short link (auto-generated if omitted)"),
		),
		mcp.WithArgument("platforms",
			mcp.ArgumentDescription("Target platforms for deep linking: ios, android, both or web"),
			mcp.RequiredArgument(),
		),
	)
}

var platformInstructions = map[string]string{
	"ios":     "Configure apple_options with the iOS application_id and appropriate request_uri. Set not_installed_options.custom_url to the App Store link.",
	"android": "Configure android_options with the Android application_id and appropriate request_uri. Set not_installed_options.custom_url to the Play Store link.",
	"both":    "Configure both apple_options and android_options with their respective application_ids and request_uris. Set not_installed_options.custom_url for each platform's store link.",
	"web":     "No platform-specific options needed. The link will redirect to the target URL on all platforms.",
}

const createDynamicLinkText = `Create a Limelink dynamic link with the following requirements:

**Target URL**: %s
**Suffix**: %s
**Platforms**: %s

## Instructions

1. Use the ` + "`create-link`" + ` tool to create the dynamic link.
2. %s
3. Set a descriptive dynamic_link_name based on the target URL content.
4. Enable stats_flag for analytics tracking.
5. Consider adding additional_options with preview_title, preview_description, and preview_image_url for social sharing.

## Important Notes

- The project_id will be resolved from the environment variable if not specified.
- Ensure the suffix is unique and URL-safe (max 50 characters).
- The target URL must be valid and accessible (max 500 characters).
- For platform options, you need the application_id from the Limelink dashboard.`

// CreateDynamicLink renders the create-dynamic-link prompt.
func CreateDynamicLink(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := req.Params.Arguments

	targetURL := args["target_url"]
	if err := validate.Var(targetURL, "required,url"); err != nil {
		return nil, fmt.Errorf("target_url must be a valid URL, got %q", targetURL)
	}

	platforms, err := enumArg(args, "platforms", linkPlatforms)
	if err != nil {
		return nil, err
	}

	suffixNote := "Generate an appropriate suffix based on the target URL content."
	if s := args["suffix"]; s != "" {
		suffixNote = fmt.Sprintf("Use %q as the link suffix.", s)
	}

	text := fmt.Sprintf(createDynamicLinkText, targetURL, suffixNote, platforms, platformInstructions[platforms])
	return userPrompt(createDynamicLinkDescription, text), nil
}
