// Package util holds small formatting helpers used by the diagnostics
// package.
package util

import "strings"

// MakeTextList joins items into a human-readable, Oxford-comma list, used
// to render a SyntaxError's expected-token set into prose.
func MakeTextList(items []string) string {
	if len(items) < 1 {
		return ""
	}

	if len(items) == 1 {
		return items[0]
	}
	if len(items) == 2 {
		return items[0] + " and " + items[1]
	}

	out := make([]string, len(items))
	copy(out, items)
	out[len(out)-1] = "and " + out[len(out)-1]
	return strings.Join(out, ", ")
}
