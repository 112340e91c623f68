// Package query implements the question answering engine over the
// vector index.
package query

import (
	"context"
	"fmt"
	"sync"

	assistant "github.com/chaurasiavikash/openSimAssistant"
)

// DefaultTopK is the number of chunks retrieved per query when the
// caller doesn't specify one.
const DefaultTopK = 4

// Canned responses for the two empty states: no index built yet, and
// an index with no relevant chunks.
const (
	NoKnowledgeBaseMessage = "No knowledge base available. Please add documents first."
	NoResultsMessage       = "I couldn't find any relevant information about that topic."
)

// Ensure Engine implements assistant.QueryService at compile time.
var _ assistant.QueryService = (*Engine)(nil)

// Engine answers questions by retrieving the most similar chunks from
// the vector index. It lazily loads the persisted index on first use
// and keeps an in-memory chat history. Safe for concurrent use.
type Engine struct {
	index assistant.VectorIndex

	mu      sync.Mutex
	loaded  bool
	history []assistant.ChatTurn
}

// NewEngine creates a new Engine over the given index.
func NewEngine(index assistant.VectorIndex) *Engine {
	return &Engine{index: index}
}

// ProcessQuery answers a question from the indexed documentation.
// Exchanges against a loaded index are recorded in the chat history;
// the canned answer for a missing knowledge base leaves no trace.
// k <= 0 means DefaultTopK.
func (e *Engine) ProcessQuery(ctx context.Context, query string, k int) (*assistant.QueryResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded {
		if _, err := e.index.Load(ctx); err != nil {
			return nil, err
		}
		e.loaded = true
	}

	if e.index.Len() == 0 {
		return &assistant.QueryResult{Answer: NoKnowledgeBaseMessage}, nil
	}

	if k <= 0 {
		k = DefaultTopK
	}

	results, err := e.index.Query(ctx, query, k)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return e.respond(query, NoResultsMessage, nil), nil
	}

	answer := fmt.Sprintf("Here's what I found about '%s':\n\n%s", query, results[0].Entry.Chunk.Text)

	sources := make([]assistant.SourceRef, len(results))
	for i, result := range results {
		sources[i] = assistant.SourceRefFromMetadata(result.Entry.Chunk.Metadata)
	}

	return e.respond(query, answer, sources), nil
}

// respond records the exchange in history and builds the result.
// Callers must hold e.mu.
func (e *Engine) respond(query, answer string, sources []assistant.SourceRef) *assistant.QueryResult {
	e.history = append(e.history,
		assistant.ChatTurn{Role: assistant.RoleUser, Content: query},
		assistant.ChatTurn{Role: assistant.RoleAssistant, Content: answer},
	)
	return &assistant.QueryResult{Answer: answer, Sources: sources}
}

// ClearHistory discards the chat history.
func (e *Engine) ClearHistory() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = nil
}

// History returns a copy of the chat history in exchange order.
func (e *Engine) History() []assistant.ChatTurn {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]assistant.ChatTurn, len(e.history))
	copy(out, e.history)
	return out
}
