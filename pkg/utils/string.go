package utils

import (
	"strings"
)

// NormalizeTagName canonicalizes a tag name: trimmed and lower-cased.
// Tags compare equal by their normalized form.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeTagNames normalizes a batch and drops empties and duplicates,
// preserving first-seen order.
func NormalizeTagNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		normalized := NormalizeTagName(name)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		result = append(result, normalized)
	}
	return result
}
