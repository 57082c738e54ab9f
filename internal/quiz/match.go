// Package quiz runs one round of questions: answer checking, combo scoring,
// the round clock and the in-round effect of power-ups.
package quiz

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes an answer for comparison: NFC composed, case
// folded, with surrounding and repeated inner whitespace collapsed.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	// Casers carry state and are not shared between goroutines.
	return cases.Fold().String(s)
}

// Match reports whether a player's answer equals the expected one.
// "Đúng" typed with combining marks matches a precomposed "đúng".
func Match(given, want string) bool {
	return Normalize(given) == Normalize(want)
}
