package mock

import assistant "github.com/chaurasiavikash/openSimAssistant"

var _ assistant.Converter = (*Converter)(nil)

// Converter is a mock implementation of assistant.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
