// Package goquery provides CSS-selector based content extraction and
// link discovery for documentation pages.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	assistant "github.com/chaurasiavikash/openSimAssistant"
)

// contentSelectors is the ordered list of content-container selectors
// tried against a page; the first match wins. The table covers the
// Confluence and SimTK layouts the assistant crawls plus common
// documentation containers.
var contentSelectors = []string{
	"div.wiki-content",
	"div.main-content",
	"article",
	"div.content",
	"div.documentation",
	"div#content",
	"div.confluenceContent",
}

// boilerplateSelector matches navigation chrome stripped from the
// chosen container before text extraction.
const boilerplateSelector = "nav, header, footer, .sidebar, .navigation, .menu, script, style, .hidden"

// headingSelectors is the fallback order for title resolution when the
// page has no <title> element.
var headingSelectors = []string{"h1", "h2", "h3"}

// FallbackTitle is used when no title can be resolved from the page.
const FallbackTitle = "Unknown Title"

// Ensure Extractor implements assistant.Extractor at compile time.
var _ assistant.Extractor = (*Extractor)(nil)

// Extractor extracts main content from page markup using an ordered
// CSS selector table. It holds no state and is safe for concurrent use.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract resolves the page title, picks the first matching content
// container (falling back to <body>), and strips boilerplate from it.
// A page with no usable container yields empty content, which callers
// treat as "drop this page".
func (e *Extractor) Extract(rawHTML string) (*assistant.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, assistant.Errorf(assistant.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &assistant.ExtractResult{Title: extractTitle(doc)}

	container := selectContainer(doc)
	if container == nil {
		return result, nil
	}

	container.Find(boilerplateSelector).Remove()

	contentHTML, err := container.Html()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(contentHTML) == "" {
		return result, nil
	}

	result.ContentHTML = contentHTML
	return result, nil
}

// extractTitle resolves the page title: <title>, then the first h1, h2,
// or h3 with text, then FallbackTitle.
func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	for _, sel := range headingSelectors {
		if heading := strings.TrimSpace(doc.Find(sel).First().Text()); heading != "" {
			return heading
		}
	}
	return FallbackTitle
}

// selectContainer returns the first matching content container, or the
// page body when no selector matches, or nil when the page has no body.
func selectContainer(doc *goquery.Document) *goquery.Selection {
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return sel.First()
		}
	}
	if body := doc.Find("body"); body.Length() > 0 {
		return body.First()
	}
	return nil
}
