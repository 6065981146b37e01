package quality

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"copydesk/internal/utils/text"
)

// Stats holds the measurements extracted from an article body.
// Everything is computed from the HTML itself; cached entity fields are
// never trusted.
type Stats struct {
	Words         int
	InternalLinks int
	ExternalLinks int
	H2Count       int
}

// Analyze measures an HTML body. siteHost identifies the site's own domain so
// anchors can be classified as internal or external. Relative links count as
// internal. Unparsable markup yields zero stats rather than an error: the net
// effect is a failed gate, which is the correct verdict for garbage content.
func Analyze(content, siteHost string) Stats {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return Stats{}
	}

	stats := Stats{
		Words:   text.CountWords(extractText(doc)),
		H2Count: doc.Find("h2").Length(),
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		switch classifyLink(href, siteHost) {
		case linkInternal:
			stats.InternalLinks++
		case linkExternal:
			stats.ExternalLinks++
		}
	})

	return stats
}

// extractText collects all text nodes joined by spaces. goquery's Text()
// concatenates adjacent nodes without a separator, which would merge the last
// word of one block with the first word of the next.
func extractText(doc *goquery.Document) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			parts = append(parts, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}

type linkClass int

const (
	linkIgnored linkClass = iota
	linkInternal
	linkExternal
)

// classifyLink decides whether an anchor points at the site itself or at an
// external source. Fragments, mailto: and other non-http schemes are ignored.
func classifyLink(href, siteHost string) linkClass {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return linkIgnored
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return linkIgnored
	}

	// Relative URLs resolve against the site itself.
	if parsed.Host == "" {
		if parsed.Scheme == "" && parsed.Path != "" {
			return linkInternal
		}
		return linkIgnored
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return linkIgnored
	}

	if hostMatches(parsed.Hostname(), siteHost) {
		return linkInternal
	}
	return linkExternal
}

// hostMatches reports whether host is the site host or a subdomain of it.
func hostMatches(host, siteHost string) bool {
	host = strings.ToLower(host)
	siteHost = strings.ToLower(siteHost)
	if siteHost == "" {
		return false
	}
	return host == siteHost || strings.HasSuffix(host, "."+siteHost)
}
