package pipeline

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copydesk/internal/domain/entity"
)

func validDraftJSON(t *testing.T, faqs any) string {
	t.Helper()
	payload := map[string]any{
		"title":   "How to Choose a Career Path",
		"excerpt": "A practical walkthrough.",
		"content": "<h2>Overview</h2><p>" + strings.TrimSpace(strings.Repeat("guidance ", 120)) + "</p>",
		"faqs":    faqs,
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return string(raw)
}

func TestParseDraft_Valid(t *testing.T) {
	raw := validDraftJSON(t, []map[string]string{
		{"question": "Is it hard?", "answer": "It depends."},
	})

	d, err := parseDraft(raw)
	require.NoError(t, err)

	assert.Equal(t, "How to Choose a Career Path", d.Title)
	assert.Equal(t, "A practical walkthrough.", d.Excerpt)
	assert.Contains(t, d.Content, "<h2>Overview</h2>")
	assert.Equal(t, []entity.FAQ{{Question: "Is it hard?", Answer: "It depends."}}, d.FAQs)
}

func TestParseDraft_RejectsNonJSON(t *testing.T) {
	_, err := parseDraft("I could not produce an article this time.")
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestParseDraft_RejectsEmptyTitle(t *testing.T) {
	raw := `{"title": "  ", "excerpt": "x", "content": "` + strings.Repeat("a", minContentChars) + `"}`
	_, err := parseDraft(raw)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestParseDraft_RejectsShortContent(t *testing.T) {
	raw := `{"title": "Short", "content": "<p>tiny</p>"}`
	_, err := parseDraft(raw)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "too short")
}

func TestParseDraft_MalformedFAQsDegradeToEmpty(t *testing.T) {
	raw := validDraftJSON(t, "not an array")

	d, err := parseDraft(raw)
	require.NoError(t, err)
	assert.Empty(t, d.FAQs)
}

func TestParseDraft_SkipsIncompleteFAQEntries(t *testing.T) {
	raw := validDraftJSON(t, []map[string]string{
		{"question": "Complete?", "answer": "Yes."},
		{"question": "No answer?"},
		{"answer": "No question."},
	})

	d, err := parseDraft(raw)
	require.NoError(t, err)
	assert.Len(t, d.FAQs, 1)
	assert.Equal(t, "Complete?", d.FAQs[0].Question)
}
