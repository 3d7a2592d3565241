// Package scrape extracts candidate links and recipe records from IBA
// markup. Extraction is a set of independent heuristics composed with
// fallback ordering; each strategy reports found/not-found and the caller
// decides whether the page is usable.
package scrape

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// cleanText collapses runs of whitespace and trims the result.
func cleanText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
