package validation

import (
	"regexp"
	"strings"
)

// CategoryPattern defines the valid reservation category token format:
// uppercase letters and digits (e.g. "GM", "2AG", "SCG").
var CategoryPattern = regexp.MustCompile(`^[A-Z0-9]+$`)

// NormalizeCategories splits a comma-separated category list into
// uppercase tokens, dropping empty, malformed, and duplicate entries
// while preserving order.
func NormalizeCategories(raw string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.Split(raw, ",") {
		token := strings.ToUpper(strings.TrimSpace(part))
		if token == "" || !CategoryPattern.MatchString(token) {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}

// SplitFilter splits a comma-separated filter value (locations, branch
// codes) into trimmed tokens. Matching downstream is case-insensitive and
// whole-token, so tokens pass through unchanged.
func SplitFilter(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if token := strings.TrimSpace(part); token != "" {
			out = append(out, token)
		}
	}
	return out
}

// ClampCount bounds a requested count to [1, max], falling back to def
// for zero or negative values.
func ClampCount(n, def, max int) int {
	if n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
