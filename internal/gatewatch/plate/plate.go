// Package plate normalizes and validates vehicle plate identifiers.
//
// The registry key format is three uppercase letters, three digits, and one
// uppercase letter (e.g. ABC123A). The format check guards the
// manual-registration path only; the detection path records whatever the
// engine read, normalized to uppercase.
package plate

import (
	"regexp"
	"strings"
)

var format = regexp.MustCompile(`^[A-Z]{3}[0-9]{3}[A-Z]$`)

// Normalize trims surrounding whitespace and uppercases the identifier.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Valid reports whether s (already normalized) matches the AAA000A format.
func Valid(s string) bool {
	return format.MatchString(s)
}
