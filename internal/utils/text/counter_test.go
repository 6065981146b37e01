package text_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"copydesk/internal/utils/text"
)

func TestCountRunes(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"hello", 5},
		{"héllo", 5},
		{"こんにちは", 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, text.CountRunes(tt.input), "input %q", tt.input)
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"   \n\t ", 0},
		{"one", 1},
		{"one two  three", 3},
		{"line one\nline two", 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, text.CountWords(tt.input), "input %q", tt.input)
	}
}

// Appending non-whitespace text must never decrease the word count.
func TestCountWordsMonotonicUnderAppend(t *testing.T) {
	base := "search engines reward depth"
	count := text.CountWords(base)
	for i := 0; i < 50; i++ {
		base += fmt.Sprintf(" token%d", i)
		next := text.CountWords(base)
		assert.GreaterOrEqual(t, next, count)
		count = next
	}
}
