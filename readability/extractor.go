// Package readability provides a heuristic content extractor as an
// alternative to the selector-table extractor, for sites whose markup
// doesn't match any known documentation layout.
package readability

import (
	"strings"

	assistant "github.com/chaurasiavikash/openSimAssistant"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements assistant.Extractor at compile time.
var _ assistant.Extractor = (*Extractor)(nil)

// Extractor scores DOM blocks with go-readability and returns the
// highest-scoring region as the page content.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract runs readability over the raw markup. Pages where no block
// scores high enough come back with empty ContentHTML, which the
// crawler counts as a skip.
func (e *Extractor) Extract(rawHTML string) (*assistant.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, assistant.Errorf(assistant.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &assistant.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
