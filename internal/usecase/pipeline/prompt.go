package pipeline

import (
	"fmt"
	"strings"

	"copydesk/internal/domain/blueprint"
	"copydesk/internal/repository"
)

// inventoryLimit caps how many published articles are offered as link
// candidates. More than this bloats the prompt without improving link choice.
const inventoryLimit = 20

// BuildDraftPrompt renders the generation prompt for a draft. It is a pure
// function: the same request, blueprint and inventory always produce the same
// prompt.
//
// When the inventory is empty the internal-link requirement is dropped rather
// than asking the model to invent URLs; the caller records that relaxation on
// the article so the quality gate skips the rule.
func BuildDraftPrompt(title string, req Request, bp blueprint.Blueprint, inventory []repository.LinkTarget) string {
	var b strings.Builder

	b.WriteString("You are an experienced SEO content writer. Write a complete article in HTML.\n\n")

	fmt.Fprintf(&b, "Title: %s\n", title)
	if len(req.TargetKeywords) > 0 {
		fmt.Fprintf(&b, "Target keywords: %s\n", strings.Join(req.TargetKeywords, ", "))
	}
	if audience := strings.TrimSpace(req.TargetAudience); audience != "" {
		fmt.Fprintf(&b, "Audience: %s. Match tone and depth to this reader.\n", audience)
	}
	if extra := strings.TrimSpace(req.AdditionalContext); extra != "" {
		fmt.Fprintf(&b, "Additional context: %s\n", extra)
	}

	b.WriteString("\nStructure the article with these sections, each under an <h2> heading:\n")
	for _, section := range bp.Sections {
		fmt.Fprintf(&b, "- %s\n", section)
	}

	b.WriteString("\nRequirements:\n")
	fmt.Fprintf(&b, "- At least %d words of body text.\n", bp.MinWords)

	if len(inventory) > 0 {
		fmt.Fprintf(&b, "- Include at least %d internal links chosen from the list below. Use the URLs exactly as given; do not invent internal URLs.\n", bp.MinInternalLinks)
	}
	fmt.Fprintf(&b, "- Include at least %d external links to authoritative sources (government statistics, industry bodies, academic publications). No fabricated URLs.\n", bp.MinExternalLinks)
	fmt.Fprintf(&b, "- Provide at least %d FAQ entries answering questions a reader would actually search for.\n", bp.MinFAQs)
	b.WriteString("- Body content must be valid HTML using <h2>, <p>, <ul>, <ol> and <a> tags only. No <h1>; the title is rendered separately.\n")

	if len(inventory) > 0 {
		b.WriteString("\nInternal link candidates:\n")
		for _, target := range inventory {
			fmt.Fprintf(&b, "- %s (%s)", target.Title, target.URL)
			if target.Excerpt != "" {
				fmt.Fprintf(&b, ": %s", target.Excerpt)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\nRespond with a single JSON object and nothing else:\n")
	b.WriteString(`{"title": "...", "excerpt": "one- or two-sentence summary", "content": "<h2>...</h2><p>...</p>", "faqs": [{"question": "...", "answer": "..."}]}`)
	b.WriteString("\n")

	return b.String()
}

// BuildHumanizePrompt renders the second-pass rewrite prompt. The rewrite is
// stylistic only; headings and links must survive unchanged so the quality
// verdict cannot silently flip between passes.
func BuildHumanizePrompt(content string) string {
	var b strings.Builder

	b.WriteString("Rewrite the following HTML article body so it reads naturally, varying sentence length and avoiding repetitive phrasing.\n\n")
	b.WriteString("Strict constraints:\n")
	b.WriteString("- Keep every <h2> heading with its exact text.\n")
	b.WriteString("- Keep every <a> link with its exact href and do not add or remove links.\n")
	b.WriteString("- Keep the overall length; do not summarize.\n")
	b.WriteString("- Output the rewritten HTML body only. No JSON, no commentary.\n\n")
	b.WriteString(content)
	b.WriteString("\n")

	return b.String()
}

// BuildTitlePrompt asks for candidate titles, one per line.
func BuildTitlePrompt(keywords []string, contentType string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Propose 3 SEO article titles for a %s article targeting these keywords: %s.\n", contentType, strings.Join(keywords, ", "))
	b.WriteString("One title per line. No numbering, no quotes, no commentary.\n")

	return b.String()
}
