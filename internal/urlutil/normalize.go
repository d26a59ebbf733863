// Package urlutil normalizes user-supplied cover image URLs so equivalent
// URLs are stored in one canonical form.
package urlutil

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/goware/urlx"
)

// Tracking parameters stripped from stored image URLs
var trackingParams = []string{
	"utm_source", "utm_medium", "utm_campaign",
	"utm_term", "utm_content",
	"fbclid", "gclid", "mc_cid", "mc_eid",
}

// NormalizeImageURL validates and canonicalizes a cover image URL:
// lowercased scheme/host, default ports and fragments removed, tracking
// parameters stripped. Only http and https URLs are accepted.
func NormalizeImageURL(rawURL string) (string, error) {
	parsed, err := urlx.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme %q", parsed.Scheme)
	}

	normalized, err := urlx.Normalize(parsed)
	if err != nil {
		return "", fmt.Errorf("normalize URL: %w", err)
	}

	u, err := url.Parse(normalized)
	if err != nil {
		return normalized, nil
	}

	q := u.Query()
	for _, param := range trackingParams {
		q.Del(param)
	}
	u.RawQuery = q.Encode()
	u.Fragment = ""

	if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	return u.String(), nil
}
