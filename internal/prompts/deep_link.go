package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const setupDeepLinkingDescription = "Guide for setting up Limelink SDK deep linking on iOS and/or Android"

func setupDeepLinkingPrompt() mcp.Prompt {
	return mcp.NewPrompt(SetupDeepLinkingName,
		mcp.WithPromptDescription(setupDeepLinkingDescription),
		mcp.WithArgument("platform",
			mcp.ArgumentDescription("Target platform(s) for deep link SDK setup: ios, android or both"),
			mcp.RequiredArgument(),
		),
	)
}

const iosSteps = `1. Read the iOS SDK documentation using the ` + "`limelink://docs/ios-sdk`" + ` resource.
2. Follow the SDK integration steps:
   - Install the LimeLink iOS SDK via CocoaPods or Swift Package Manager
   - Configure the URL scheme and associated domains
   - Initialize the SDK in your AppDelegate
   - Handle incoming deep links in your app`

const androidSteps = `1. Read the Android SDK documentation using the ` + "`limelink://docs/android-sdk`" + ` resource.
2. Follow the SDK integration steps:
   - Add the LimeLink Android SDK dependency via Gradle
   - Configure intent filters in AndroidManifest.xml
   - Initialize the SDK in your Application class
   - Handle incoming deep links in your Activity`

const testStep = "3. Test deep link handling using a dynamic link created with the `create-link` tool."

func platformGuide(platform string) (guide string, resources []string) {
	switch platform {
	case "ios":
		return "## iOS Setup\n\n" + iosSteps + "\n" + testStep,
			[]string{"limelink://docs/ios-sdk"}
	case "android":
		return "## Android Setup\n\n" + androidSteps + "\n" + testStep,
			[]string{"limelink://docs/android-sdk"}
	default:
		guide = "## iOS Setup\n\n" + iosSteps +
			"\n\n## Android Setup\n\n" + androidSteps +
			"\n\n## Cross-Platform Testing\n\n" +
			"Test deep link handling on both platforms using dynamic links created with the `create-link` tool."
		return guide, []string{"limelink://docs/ios-sdk", "limelink://docs/android-sdk"}
	}
}

// SetupDeepLinking renders the setup-deep-linking prompt.
func SetupDeepLinking(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	platform, err := enumArg(req.Params.Arguments, "platform", setupPlatforms)
	if err != nil {
		return nil, err
	}

	target := platform
	if platform == "both" {
		target = "iOS and Android"
	}

	guide, resources := platformGuide(platform)

	var b strings.Builder
	fmt.Fprintf(&b, "Set up Limelink deep linking for %s.\n\n", target)
	b.WriteString("## Prerequisites\n\n")
	b.WriteString("- Read the SDK integration overview from `limelink://docs/sdk-integration` resource first.\n")
	b.WriteString("- Ensure you have a Limelink project with registered applications for your target platform(s).\n\n")
	b.WriteString(guide)
	b.WriteString("\n\n## Available Resources\n\nThe following documentation resources can help:\n")
	for _, r := range resources {
		fmt.Fprintf(&b, "- `%s`\n", r)
	}
	b.WriteString("- `limelink://docs/sdk-integration`: General SDK integration overview\n")
	b.WriteString("- `limelink://docs/dynamic-link`: Dynamic link concepts\n")
	b.WriteString("- `limelink://docs/create-link`: Link creation guide")

	return userPrompt(setupDeepLinkingDescription, b.String()), nil
}
