package pipeline

import (
	"context"
	"strings"

	"copydesk/internal/infra/generation"
)

// TitleStrategy decides the working title for a generation request.
// Exactly one strategy is injected; the pipeline itself has a single code
// path regardless of where the title comes from.
type TitleStrategy interface {
	Pick(ctx context.Context, gen generation.Client, req Request) (string, error)
}

// HumanChoice uses the title supplied in the request verbatim.
type HumanChoice struct{}

// Pick implements TitleStrategy.
func (HumanChoice) Pick(_ context.Context, _ generation.Client, req Request) (string, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return "", ErrMissingTitle
	}
	return title, nil
}

// BestOfThree asks the model for three candidate titles and takes the first
// usable one. A request title, when present, still wins; the model is only
// consulted when the operator left the title blank.
type BestOfThree struct{}

// Pick implements TitleStrategy.
func (BestOfThree) Pick(ctx context.Context, gen generation.Client, req Request) (string, error) {
	if title := strings.TrimSpace(req.Title); title != "" {
		return title, nil
	}

	raw, err := gen.Complete(ctx, BuildTitlePrompt(req.TargetKeywords, string(req.ContentType)), generation.Options{})
	if err != nil {
		return "", err
	}

	for _, line := range strings.Split(raw, "\n") {
		if title := cleanTitleLine(line); title != "" {
			return title, nil
		}
	}
	return "", ErrMissingTitle
}

// cleanTitleLine strips list markers and quoting the model tends to add
// despite instructions.
func cleanTitleLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "0123456789.-)* ")
	line = strings.Trim(line, `"'`)
	return strings.TrimSpace(line)
}
