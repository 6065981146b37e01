package quality_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"copydesk/internal/usecase/quality"
)

const siteHost = "example.com"

func words(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "word%d ", i)
	}
	return sb.String()
}

func TestAnalyzeCountsWordsAcrossTags(t *testing.T) {
	content := "<h2>Intro</h2><p>one two three</p><p>four five</p>"
	stats := quality.Analyze(content, siteHost)
	assert.Equal(t, 6, stats.Words) // heading text counts too
	assert.Equal(t, 1, stats.H2Count)
}

func TestAnalyzeClassifiesLinks(t *testing.T) {
	content := `<p>
		<a href="https://example.com/guide">internal absolute</a>
		<a href="https://blog.example.com/post">internal subdomain</a>
		<a href="/careers/engineer">internal relative</a>
		<a href="https://www.bls.gov/ooh/">external</a>
		<a href="http://stats.oecd.org/">external</a>
		<a href="mailto:team@example.com">ignored</a>
		<a href="#faq">ignored</a>
	</p>`
	stats := quality.Analyze(content, siteHost)
	assert.Equal(t, 3, stats.InternalLinks)
	assert.Equal(t, 2, stats.ExternalLinks)
}

func TestAnalyzeEmptyContent(t *testing.T) {
	stats := quality.Analyze("", siteHost)
	assert.Zero(t, stats.Words)
	assert.Zero(t, stats.InternalLinks)
	assert.Zero(t, stats.ExternalLinks)
	assert.Zero(t, stats.H2Count)
}

// Appending non-whitespace body text never decreases the measured word count.
func TestAnalyzeWordCountMonotonicUnderAppend(t *testing.T) {
	content := "<p>" + words(50) + "</p>"
	prev := quality.Analyze(content, siteHost).Words
	for i := 0; i < 20; i++ {
		content += fmt.Sprintf("<p>extra%d</p>", i)
		current := quality.Analyze(content, siteHost).Words
		assert.GreaterOrEqual(t, current, prev)
		prev = current
	}
}
