package prompts

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptReq(args map[string]string) mcp.GetPromptRequest {
	var req mcp.GetPromptRequest
	req.Params.Arguments = args
	return req
}

func promptText(t *testing.T, res *mcp.GetPromptResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, mcp.RoleUser, res.Messages[0].Role)
	tc, ok := res.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Messages[0].Content)
	return tc.Text
}

func TestCreateDynamicLink(t *testing.T) {
	res, err := CreateDynamicLink(context.Background(), promptReq(map[string]string{
		"target_url": "https://example.com/product",
		"suffix":     "spring",
		"platforms":  "ios",
	}))
	require.NoError(t, err)

	text := promptText(t, res)
	assert.Contains(t, text, "**Target URL**: https://example.com/product")
	assert.Contains(t, text, `Use "spring" as the link suffix.`)
	assert.Contains(t, text, "**Platforms**: ios")
	assert.Contains(t, text, "apple_options")
	assert.Contains(t, text, "App Store")
	assert.Contains(t, text, "`create-link`")
}

func TestCreateDynamicLinkPlatforms(t *testing.T) {
	tests := map[string]string{
		"android": "Play Store",
		"both":    "both apple_options and android_options",
		"web":     "No platform-specific options needed",
	}

	for platform, want := range tests {
		t.Run(platform, func(t *testing.T) {
			res, err := CreateDynamicLink(context.Background(), promptReq(map[string]string{
				"target_url": "https://example.com",
				"platforms":  platform,
			}))
			require.NoError(t, err)

			text := promptText(t, res)
			assert.Contains(t, text, want)
			assert.Contains(t, text, "Generate an appropriate suffix")
		})
	}
}

func TestCreateDynamicLinkRejectsBadArgs(t *testing.T) {
	_, err := CreateDynamicLink(context.Background(), promptReq(map[string]string{
		"target_url": "https://example.com",
		"platforms":  "windows",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "platforms")

	_, err = CreateDynamicLink(context.Background(), promptReq(map[string]string{
		"target_url": "not a url",
		"platforms":  "web",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target_url")
}

func TestSetupDeepLinking(t *testing.T) {
	tests := []struct {
		platform string
		target   string
		contains []string
		absent   []string
	}{
		{
			platform: "ios",
			target:   "Set up Limelink deep linking for ios.",
			contains: []string{"## iOS Setup", "- `limelink://docs/ios-sdk`"},
			absent:   []string{"## Android Setup", "limelink://docs/android-sdk"},
		},
		{
			platform: "android",
			target:   "Set up Limelink deep linking for android.",
			contains: []string{"## Android Setup", "AndroidManifest.xml", "- `limelink://docs/android-sdk`"},
			absent:   []string{"## iOS Setup", "limelink://docs/ios-sdk"},
		},
		{
			platform: "both",
			target:   "Set up Limelink deep linking for iOS and Android.",
			contains: []string{"## iOS Setup", "## Android Setup", "## Cross-Platform Testing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			res, err := SetupDeepLinking(context.Background(), promptReq(map[string]string{"platform": tt.platform}))
			require.NoError(t, err)

			text := promptText(t, res)
			assert.Contains(t, text, tt.target)
			assert.Contains(t, text, "limelink://docs/sdk-integration")
			assert.Contains(t, text, "limelink://docs/dynamic-link")
			assert.Contains(t, text, "limelink://docs/create-link")
			for _, s := range tt.contains {
				assert.Contains(t, text, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, text, s)
			}
		})
	}
}

func TestSetupDeepLinkingRejectsUnknownPlatform(t *testing.T) {
	_, err := SetupDeepLinking(context.Background(), promptReq(map[string]string{"platform": "web"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid platform "web"`)

	_, err = SetupDeepLinking(context.Background(), promptReq(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "platform is required")
}
