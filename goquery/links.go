package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	assistant "github.com/chaurasiavikash/openSimAssistant"
)

// Ensure LinkExtractor implements assistant.LinkExtractor at compile time.
var _ assistant.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor discovers hyperlink targets in page markup. Targets are
// resolved against the page URL, deduplicated in document order, and
// filtered to the page's origin.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks parses the markup and returns absolute same-origin URLs.
// Fragment-only, script-pseudo, and cross-origin targets are dropped;
// fragments are stripped from survivors so URLs differing only by
// fragment collapse into one.
func (l *LinkExtractor) ExtractLinks(rawHTML string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, assistant.Errorf(assistant.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, assistant.Errorf(assistant.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if strings.HasPrefix(href, "#") || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		if !isSameOrigin(base, resolved) {
			return
		}

		if !seen[resolved] {
			seen[resolved] = true
			links = append(links, resolved)
		}
	})

	return links, nil
}

// resolveURL resolves a relative href against a base URL, stripping the
// fragment. Returns empty string for unparseable hrefs and for
// self-referential targets (anchor links back to the same page).
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameOrigin checks that the resolved URL shares scheme and host with
// the base URL. Subdomains count as different hosts.
func isSameOrigin(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Scheme == base.Scheme && u.Host == base.Host
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be
// skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
