// Package strings holds text helpers shared by the binding and its output
// rendering.
package strings

import (
	"strings"
)

// DefaultDescriptionMaxLen is the description width used in catalog tables.
const DefaultDescriptionMaxLen = 60

// MinTruncateLen is the smallest maxLen TruncateDescription honours.
const MinTruncateLen = 4

// TruncateDescription collapses whitespace in s to single spaces and cuts it
// to maxLen runes, ending a cut string with "...".
func TruncateDescription(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}
	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}

// FirstLine returns the first non-empty line of s, trimmed.
func FirstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
