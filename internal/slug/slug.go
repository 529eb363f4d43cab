// Package slug converts display strings into URL-safe identifiers.
package slug

import (
	"regexp"
	"strings"
)

var (
	whitespace      = regexp.MustCompile(`\s+`)
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9-]+`)
	repeatedHyphens = regexp.MustCompile(`-{2,}`)
)

// Make converts an arbitrary display string into its canonical slug:
// lowercase, whitespace replaced by hyphens, everything outside [a-z0-9-]
// stripped, runs of hyphens collapsed, and edge hyphens trimmed.
// Make is pure and idempotent; it performs no uniqueness checks.
func Make(s string) string {
	out := strings.ToLower(strings.TrimSpace(s))
	out = whitespace.ReplaceAllString(out, "-")
	out = nonSlugChars.ReplaceAllString(out, "")
	out = repeatedHyphens.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}
