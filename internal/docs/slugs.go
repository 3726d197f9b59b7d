package docs

import (
	"fmt"
	"slices"
	"strings"
)

// validSlugs lists every documentation page published under /md/.
var validSlugs = []string{
	"introduction",
	"getting-started",
	"project",
	"application",
	"dynamic-link",
	"create-link",
	"link-detail",
	"link-management",
	"appearance",
	"sdk-integration",
	"ios-sdk",
	"android-sdk",
	"api-integration",
	"advanced",
	"llm-agent",
}

// IsValidSlug reports whether slug names a known documentation page.
// Matching is exact and case-sensitive.
func IsValidSlug(slug string) bool {
	return slices.Contains(validSlugs, slug)
}

// ValidSlugs returns the known slugs in publication order.
func ValidSlugs() []string {
	return slices.Clone(validSlugs)
}

// InvalidSlugError is returned for a slug outside ValidSlugs.
type InvalidSlugError struct {
	Slug  string
	Valid []string
}

func (e *InvalidSlugError) Error() string {
	return fmt.Sprintf("invalid documentation slug: %q. Valid slugs: %s",
		e.Slug, strings.Join(e.Valid, ", "))
}
