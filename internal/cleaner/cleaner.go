// Package cleaner normalizes text scraped from HTML pages.
package cleaner

import (
	"strings"

	"golang.org/x/net/html"
)

// Clean decodes HTML entities, collapses whitespace runs into single spaces
// and trims the result. Clean(Clean(s)) == Clean(s) for every input.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.Join(strings.Fields(unescape(raw)), " ")
}

// unescape decodes until the text stops changing so doubly encoded input
// ("&amp;amp;") ends up fully decoded in one pass.
func unescape(s string) string {
	for strings.Contains(s, "&") {
		next := html.UnescapeString(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}
