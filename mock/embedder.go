package mock

import (
	"context"

	assistant "github.com/chaurasiavikash/openSimAssistant"
)

var _ assistant.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of assistant.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, text string) ([]float32, error)
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}
