// Package extract finds event-channel identifiers in raw source text.
//
// Matching is purely lexical. Any double-quoted span that starts with
// "client:" or "server:" and continues with letters, digits, ':', '-' or '_'
// is a candidate, whether it sits in a string literal, a comment or anywhere
// else in the text.
package extract

import (
	"regexp"
	"strings"
)

// Pattern matches a quoted identifier including its surrounding quotes.
var Pattern = regexp.MustCompile(`"(?:client|server):[A-Za-z0-9:_-]*"`)

// Extract returns every identifier in text, left to right, with the quotes
// stripped. Duplicates are preserved.
func Extract(text string) []string {
	matches := Pattern.FindAllString(text, -1)
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, strings.Trim(m, `"`))
	}
	return ids
}

// Distinct returns ids with duplicates removed, keeping first occurrences.
func Distinct(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// IsIdentifier reports whether s, without quotes, would be extracted.
func IsIdentifier(s string) bool {
	ids := Extract(`"` + s + `"`)
	return len(ids) == 1 && ids[0] == s
}
