package generation

import "strings"

// metaPrefixes are conversational lead-ins models prepend despite being told
// to return only structured data.
var metaPrefixes = []string{
	"here's",
	"here is",
	"sure,",
	"sure!",
	"certainly",
	"of course",
	"below is",
	"i've",
	"i have",
}

// Clean normalizes raw model output: strips code-fence wrappers, drops leading
// meta-commentary lines ("Here's your article:") and trims whitespace.
// Stripping runs to a fixpoint, so commentary wrapped around a fence (or the
// other way round) is fully removed.
//
// Clean is idempotent: cleaning already-clean output is a no-op.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)
	for {
		next := stripFence(stripMetaLines(s))
		if next == s {
			return s
		}
		s = next
	}
}

// stripMetaLines drops leading commentary lines before the actual payload.
func stripMetaLines(s string) string {
	for {
		line, rest, found := strings.Cut(s, "\n")
		if !found || !isMetaCommentary(line) {
			return s
		}
		s = strings.TrimSpace(rest)
	}
}

// stripFence removes one code-fence wrapper, with or without a language tag.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// isMetaCommentary reports whether a line is model chatter rather than
// payload. Payload lines start with markup or JSON; chatter is prose that
// matches a known lead-in.
func isMetaCommentary(line string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(line))
	if trimmed == "" {
		return true
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "<") {
		return false
	}
	for _, prefix := range metaPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}
