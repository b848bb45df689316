package naming

import (
	"regexp"
	"strings"
)

var prefixStrip = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizePrefix reduces a user-supplied prefix to its canonical form:
// lowercase, [a-z0-9] only, with exactly one trailing hyphen. An input with no
// usable characters normalizes to the empty string, which disables prefixing.
// Normalizing an already-canonical prefix returns it unchanged.
func NormalizePrefix(prefix string) string {
	normalized := prefixStrip.ReplaceAllString(strings.ToLower(prefix), "")
	if normalized == "" {
		return ""
	}
	return normalized + "-"
}

// ApplyPrefix prepends the canonical prefix to slug unless the slug already
// carries it. The check accepts the prefix both with and without its trailing
// hyphen so that re-running over previously prefixed names never doubles up.
func ApplyPrefix(slug, prefix string) string {
	if prefix == "" {
		return slug
	}
	bare := strings.TrimSuffix(prefix, "-")
	if strings.HasPrefix(slug, prefix) || strings.HasPrefix(slug, bare) {
		return slug
	}
	return prefix + slug
}
