package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"copydesk/internal/domain/entity"
)

// minContentChars is the floor below which a draft body is considered
// truncated or degenerate regardless of what the quality gate would say.
const minContentChars = 500

// draft is the parsed model response for a generation call.
type draft struct {
	Title   string
	Excerpt string
	Content string
	FAQs    []entity.FAQ
}

// parseDraft validates the cleaned model output against the draft contract.
// FAQs are best effort: a malformed faqs field degrades to an empty list
// because FAQ coverage is an advisory rule, not grounds for discarding an
// otherwise valid draft.
func parseDraft(raw string) (draft, error) {
	var payload struct {
		Title   string          `json:"title"`
		Excerpt string          `json:"excerpt"`
		Content string          `json:"content"`
		FAQs    json.RawMessage `json:"faqs"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return draft{}, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	title := strings.TrimSpace(payload.Title)
	if title == "" {
		return draft{}, fmt.Errorf("%w: missing title", ErrInvalidOutput)
	}

	content := strings.TrimSpace(payload.Content)
	if len(content) < minContentChars {
		return draft{}, fmt.Errorf("%w: content too short (%d chars, need %d)", ErrInvalidOutput, len(content), minContentChars)
	}

	return draft{
		Title:   title,
		Excerpt: strings.TrimSpace(payload.Excerpt),
		Content: content,
		FAQs:    parseFAQs(payload.FAQs),
	}, nil
}

func parseFAQs(raw json.RawMessage) []entity.FAQ {
	if len(raw) == 0 {
		return nil
	}

	var items []struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	faqs := make([]entity.FAQ, 0, len(items))
	for _, item := range items {
		q := strings.TrimSpace(item.Question)
		a := strings.TrimSpace(item.Answer)
		if q == "" || a == "" {
			continue
		}
		faqs = append(faqs, entity.FAQ{Question: q, Answer: a})
	}
	return faqs
}
