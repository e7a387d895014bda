package storage

import (
	"strings"

	"github.com/tidwall/match"
)

// Filter returns the names matching a glob pattern ('*' and '?'). An
// empty pattern matches everything.
func Filter(names []string, pattern string) []string {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return append([]string(nil), names...)
	}
	var out []string
	for _, n := range names {
		if match.Match(n, pattern) {
			out = append(out, n)
		}
	}
	return out
}
