// Package text provides utilities for text measurement.
// These are shared between the generation pipeline and the quality gate so
// that both measure content the same way.
package text

import "strings"

// CountRunes counts the number of Unicode characters (runes) in the given
// text. Counting runes instead of bytes keeps the measurement correct for
// multi-byte characters.
func CountRunes(s string) int {
	return len([]rune(s))
}

// CountWords counts whitespace-separated tokens in plain text.
// The input is expected to already have markup stripped; callers working with
// HTML should extract the text first.
func CountWords(s string) int {
	return len(strings.Fields(s))
}
