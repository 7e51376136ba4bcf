// Package resolver maps pseudonyms found in shipped code or logs back to the
// event identifiers they replaced, and identifiers forward to pseudonyms.
package resolver

import (
	"fmt"
	"strings"

	"github.com/dyluth/evhash/internal/extract"
	"github.com/dyluth/evhash/internal/pseudonym"
)

// MinPrefixLength is the minimum required length for pseudonym prefixes.
const MinPrefixLength = 6

const hexDigits = "0123456789abcdef"

// Forward returns the pseudonym an identifier is given when it is not
// pre-assigned.
func Forward(id string) (pseudonym.Entry, error) {
	if !extract.IsIdentifier(id) {
		return pseudonym.Entry{}, fmt.Errorf("not an event identifier: %s", id)
	}
	return pseudonym.Entry{Identifier: id, Pseudonym: pseudonym.Digest(id)}, nil
}

// Reverse finds the single entry whose pseudonym starts with prefix.
// Matching is case-insensitive because digests are printed in lowercase hex.
func Reverse(entries []pseudonym.Entry, prefix string) (pseudonym.Entry, error) {
	if len(prefix) < MinPrefixLength {
		return pseudonym.Entry{}, fmt.Errorf("pseudonym prefix must be at least %d characters (got %d)", MinPrefixLength, len(prefix))
	}
	prefix = strings.ToLower(prefix)
	if strings.TrimLeft(prefix, hexDigits) != "" {
		return pseudonym.Entry{}, fmt.Errorf("pseudonym prefix must be hexadecimal: %s", prefix)
	}

	var matches []pseudonym.Entry
	for _, e := range entries {
		if strings.HasPrefix(e.Pseudonym, prefix) {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 0:
		return pseudonym.Entry{}, &NotFoundError{Prefix: prefix}
	case 1:
		return matches[0], nil
	default:
		return pseudonym.Entry{}, &AmbiguousError{Prefix: prefix, Matches: matches}
	}
}

// NotFoundError indicates no pseudonym matched the prefix.
type NotFoundError struct {
	Prefix string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no pseudonym found matching '%s'", e.Prefix)
}

// AmbiguousError indicates multiple pseudonyms matched the prefix.
type AmbiguousError struct {
	Prefix  string
	Matches []pseudonym.Entry
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous prefix '%s' matches %d pseudonyms", e.Prefix, len(e.Matches))
}

// FormatAmbiguousError lists the matching identifiers (up to 10, then
// "...and N more").
func FormatAmbiguousError(err *AmbiguousError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Prefix '%s' matches %d pseudonyms:\n", err.Prefix, len(err.Matches))

	displayCount := len(err.Matches)
	if displayCount > 10 {
		displayCount = 10
	}
	for _, m := range err.Matches[:displayCount] {
		fmt.Fprintf(&b, "  %s  %s\n", m.Pseudonym[:min(len(m.Pseudonym), 16)], m.Identifier)
	}
	if len(err.Matches) > 10 {
		fmt.Fprintf(&b, "  ...and %d more\n", len(err.Matches)-10)
	}

	b.WriteString("\nUse a longer prefix to identify a single pseudonym.")
	return b.String()
}

// IsNotFoundError checks if an error is a NotFoundError.
func IsNotFoundError(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// IsAmbiguousError checks if an error is an AmbiguousError.
func IsAmbiguousError(err error) bool {
	_, ok := err.(*AmbiguousError)
	return ok
}
