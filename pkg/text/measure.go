package text

import "unicode/utf8"

// Text is measured in characters: every character is exactly one font size
// wide and one font size tall. Characters are runes, so multi-byte text
// wraps at the same positions as ASCII text.

// Len returns the number of characters in s.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// MeasureText returns the box a run of text occupies at fontSize.
func MeasureText(s string, fontSize int) (width, height int) {
	return Len(s) * fontSize, fontSize
}

// FitCount returns how many characters of fontSize fit into available.
// A non-positive font size fits nothing.
func FitCount(available, fontSize int) int {
	if fontSize <= 0 || available <= 0 {
		return 0
	}
	return available / fontSize
}

// Runes splits s into characters for repeated slicing.
func Runes(s string) []rune {
	return []rune(s)
}
