// Package slug derives URL-safe, human-readable post identifiers from
// titles. Uniqueness against the post store is handled by the database
// layer.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

// Fallback is used when a title reduces to nothing (e.g. all punctuation).
const Fallback = "post"

var (
	invalidChars = regexp.MustCompile(`[^\w\s-]`)
	separators   = regexp.MustCompile(`[\s_-]+`)
)

// Make derives a slug candidate from a title: lowercase, strip characters
// outside word chars/spaces/hyphens, collapse runs of whitespace,
// underscores and hyphens into single hyphens, and trim leading/trailing
// hyphens.
func Make(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = invalidChars.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return Fallback
	}
	return s
}

// Unique disambiguates a candidate slug by appending -1, -2, ... until taken
// reports it free. taken is typically backed by a store lookup that excludes
// the post's own row, so re-saving an unchanged title keeps its slug.
func Unique(base string, taken func(candidate string) (bool, error)) (string, error) {
	candidate := base
	for n := 1; ; n++ {
		exists, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
