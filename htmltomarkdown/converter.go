// Package htmltomarkdown converts extracted page HTML into the Markdown
// that the chunker splits on.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	assistant "github.com/chaurasiavikash/openSimAssistant"
)

// Ensure Converter implements assistant.Converter at compile time.
var _ assistant.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown. The
// commonmark and table plugins keep headings, code blocks, and tables
// intact so the chunker can split on heading boundaries.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", assistant.Errorf(assistant.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}
