// Package linkurl classifies Limelink short-link URLs.
package linkurl

import (
	"net/url"
	"strings"
)

const (
	// FreeHost serves links of every free-plan project: https://deep.limelink.org/{suffix}
	FreeHost = "deep.limelink.org"
	// BaseDomain is shared by per-project hosts: https://{project}.limelink.org/link/{suffix}
	BaseDomain = ".limelink.org"

	projectPathPrefix = "/link/"
)

// ExtractSuffix returns the dynamic link suffix encoded in raw, or false when
// raw is not a recognized Limelink link. It never fails on malformed input.
//
// The exact free-plan host is checked before the base-domain match, so
// deep.limelink.org never goes through the /link/ rule.
func ExtractSuffix(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	path := u.EscapedPath()

	switch {
	case host == FreeHost:
		suffix := strings.TrimPrefix(path, "/")
		return suffix, suffix != ""
	case strings.HasSuffix(host, BaseDomain):
		suffix, ok := strings.CutPrefix(path, projectPathPrefix)
		if !ok || suffix == "" {
			return "", false
		}
		return suffix, true
	default:
		return "", false
	}
}
