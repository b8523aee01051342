// Package text prepares caption strings for single-line rendering.
package text

import (
	"strings"
	"unicode"
)

// Ellipsis marks a shortened caption.
const Ellipsis = "..."

// Measure returns the rendered width of s in the current font.
type Measure func(s string) float64

// Clean turns control characters into spaces and collapses runs of
// whitespace so the caption stays on one line.
func Clean(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// Fit trims text from the right and appends Ellipsis until it is at most
// maxWidth wide. Text is expected in a single-byte encoding. If not even one
// character fits, Ellipsis alone is returned.
func Fit(text string, maxWidth float64, measure Measure) string {
	if measure(text) <= maxWidth {
		return text
	}
	for n := len(text) - 1; n > 0; n-- {
		candidate := strings.TrimRight(text[:n], " ") + Ellipsis
		if measure(candidate) <= maxWidth {
			return candidate
		}
	}
	return Ellipsis
}
