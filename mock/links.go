package mock

import assistant "github.com/chaurasiavikash/openSimAssistant"

var _ assistant.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of assistant.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (l *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	return l.ExtractLinksFn(html, baseURL)
}
