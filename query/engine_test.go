package query_test

import (
	"context"
	"errors"
	"testing"

	assistant "github.com/chaurasiavikash/openSimAssistant"
	"github.com/chaurasiavikash/openSimAssistant/mock"
	"github.com/chaurasiavikash/openSimAssistant/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptyIndex mocks an index with nothing persisted.
func emptyIndex() *mock.VectorIndex {
	return &mock.VectorIndex{
		LoadFn: func(ctx context.Context) (bool, error) { return false, nil },
		LenFn:  func() int { return 0 },
	}
}

// loadedIndex mocks an index that answers every query with the given
// results.
func loadedIndex(results []assistant.SearchResult) *mock.VectorIndex {
	return &mock.VectorIndex{
		LoadFn:  func(ctx context.Context) (bool, error) { return true, nil },
		LenFn:   func() int { return 3 },
		QueryFn: func(ctx context.Context, text string, k int) ([]assistant.SearchResult, error) { return results, nil },
	}
}

func scalingResult(score float32) assistant.SearchResult {
	return assistant.SearchResult{
		Entry: assistant.IndexEntry{
			ID: "entry-1",
			Chunk: assistant.Chunk{
				Text: "Use the Scale Tool to match a generic model to subject measurements.",
				Metadata: assistant.Metadata{
					Title:   "Scaling",
					Source:  "https://example.org/scaling",
					Section: "Tutorials",
					Type:    assistant.TypeTutorial,
				},
			},
		},
		Score: score,
	}
}

func TestEngine_reports_missing_knowledge_base(t *testing.T) {
	t.Parallel()

	engine := query.NewEngine(emptyIndex())

	result, err := engine.ProcessQuery(context.Background(), "", 0)
	require.NoError(t, err)

	assert.Equal(t, query.NoKnowledgeBaseMessage, result.Answer)
	assert.Empty(t, result.Sources)
	assert.Empty(t, engine.History(), "missing knowledge base leaves no history")
}

func TestEngine_answers_with_top_chunk_and_all_sources(t *testing.T) {
	t.Parallel()

	second := scalingResult(0.5)
	second.Entry.Chunk.Metadata.Title = "Marker Placement"
	engine := query.NewEngine(loadedIndex([]assistant.SearchResult{scalingResult(0.9), second}))

	result, err := engine.ProcessQuery(context.Background(), "How do I scale a model?", 4)
	require.NoError(t, err)

	assert.Equal(t, "Here's what I found about 'How do I scale a model?':\n\nUse the Scale Tool to match a generic model to subject measurements.", result.Answer)
	require.Len(t, result.Sources, 2)
	assert.Equal(t, "Scaling", result.Sources[0].Title)
	assert.Equal(t, "Marker Placement", result.Sources[1].Title)
}

func TestEngine_reports_no_relevant_results(t *testing.T) {
	t.Parallel()

	engine := query.NewEngine(loadedIndex(nil))

	result, err := engine.ProcessQuery(context.Background(), "quantum chromodynamics", 4)
	require.NoError(t, err)

	assert.Equal(t, query.NoResultsMessage, result.Answer)
	assert.Empty(t, result.Sources)

	history := engine.History()
	require.Len(t, history, 2, "an answered query records both turns")
	assert.Equal(t, assistant.RoleUser, history[0].Role)
	assert.Equal(t, query.NoResultsMessage, history[1].Content)
}

func TestEngine_defaults_k_when_not_positive(t *testing.T) {
	t.Parallel()

	var gotK int
	index := loadedIndex([]assistant.SearchResult{scalingResult(0.9)})
	index.QueryFn = func(ctx context.Context, text string, k int) ([]assistant.SearchResult, error) {
		gotK = k
		return []assistant.SearchResult{scalingResult(0.9)}, nil
	}

	engine := query.NewEngine(index)
	_, err := engine.ProcessQuery(context.Background(), "scaling", 0)
	require.NoError(t, err)
	assert.Equal(t, query.DefaultTopK, gotK)
}

func TestEngine_loads_index_once(t *testing.T) {
	t.Parallel()

	loads := 0
	index := loadedIndex([]assistant.SearchResult{scalingResult(0.9)})
	index.LoadFn = func(ctx context.Context) (bool, error) {
		loads++
		return true, nil
	}

	engine := query.NewEngine(index)
	ctx := context.Background()

	_, err := engine.ProcessQuery(ctx, "first", 1)
	require.NoError(t, err)
	_, err = engine.ProcessQuery(ctx, "second", 1)
	require.NoError(t, err)

	assert.Equal(t, 1, loads)
}

func TestEngine_propagates_load_failure(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("disk gone")
	index := emptyIndex()
	index.LoadFn = func(ctx context.Context) (bool, error) { return false, wantErr }

	engine := query.NewEngine(index)
	_, err := engine.ProcessQuery(context.Background(), "anything", 1)
	require.ErrorIs(t, err, wantErr)
	assert.Empty(t, engine.History(), "failed queries leave no history")
}

func TestEngine_clear_history(t *testing.T) {
	t.Parallel()

	engine := query.NewEngine(loadedIndex([]assistant.SearchResult{scalingResult(0.9)}))
	ctx := context.Background()

	_, err := engine.ProcessQuery(ctx, "scaling", 1)
	require.NoError(t, err)
	require.Len(t, engine.History(), 2)

	engine.ClearHistory()
	assert.Empty(t, engine.History())
}

func TestEngine_sources_default_missing_metadata_to_unknown(t *testing.T) {
	t.Parallel()

	bare := assistant.SearchResult{
		Entry: assistant.IndexEntry{Chunk: assistant.Chunk{Text: "orphan chunk"}},
		Score: 0.8,
	}
	engine := query.NewEngine(loadedIndex([]assistant.SearchResult{bare}))

	result, err := engine.ProcessQuery(context.Background(), "orphan", 1)
	require.NoError(t, err)

	require.Len(t, result.Sources, 1)
	assert.Equal(t, "Unknown", result.Sources[0].Title)
	assert.Equal(t, "Unknown", result.Sources[0].Source)
	assert.Equal(t, "Unknown", result.Sources[0].Section)
}
