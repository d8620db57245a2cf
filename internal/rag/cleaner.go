package rag

import (
	"regexp"
	"strings"
)

var (
	horizontalRuns = regexp.MustCompile(`[ \t]+`)
	newlineRuns    = regexp.MustCompile(`\n+`)
)

// Clean collapses runs of spaces and tabs to a single space, runs of
// newlines to a single newline, and strips leading and trailing whitespace.
// Empty input maps to the empty string and the function is idempotent.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = horizontalRuns.ReplaceAllString(text, " ")
	text = newlineRuns.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
