// Package comparator normalises and compares program output against an
// expected value, per spec.md §4.2.
package comparator

import "strings"

// Normalise applies the canonical transform: CRLF→LF, per-line
// right-trim, rejoin, then right-trim trailing LF runs. It is applied
// identically to actual and expected output before comparison.
func Normalise(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\f\v")
	}
	joined := strings.Join(lines, "\n")
	return strings.TrimRight(joined, "\n")
}

// Equal reports whether actual and expected are equal after Normalise,
// compared byte-exact (ordinal).
func Equal(actual, expected string) bool {
	return Normalise(actual) == Normalise(expected)
}
