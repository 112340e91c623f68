// Package gemini implements embeddings using the Google Gemini API.
package gemini

import (
	"context"

	assistant "github.com/chaurasiavikash/openSimAssistant"
	"google.golang.org/genai"
)

const model = "gemini-embedding-001"

// Ensure Embedder implements assistant.Embedder at compile time.
var _ assistant.Embedder = (*Embedder)(nil)

// Embedder implements assistant.Embedder using Google Gemini.
type Embedder struct {
	client *genai.Client
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(client *genai.Client) *Embedder {
	return &Embedder{client: client}
}

// Embed returns the embedding vector for the given text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, assistant.Errorf(assistant.EINVALID, "text required")
	}

	result, err := e.client.Models.EmbedContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: text}},
		}},
		nil,
	)
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, assistant.Errorf(assistant.EINTERNAL, "gemini returned empty embedding")
	}

	return result.Embeddings[0].Values, nil
}
