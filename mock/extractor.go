package mock

import assistant "github.com/chaurasiavikash/openSimAssistant"

var _ assistant.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of assistant.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*assistant.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*assistant.ExtractResult, error) {
	return e.ExtractFn(html)
}
