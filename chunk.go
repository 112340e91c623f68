package assistant

import "context"

// Chunk is a bounded-length text segment derived from exactly one
// Document; it is the atomic unit of retrieval. Chunks are never mutated
// after creation.
type Chunk struct {
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`

	// Index is the chunk's ordinal within its source document.
	Index int `json:"index"`
}

// IndexEntry pairs an embedded chunk with its vector. Entries live for
// the lifetime of the index they belong to.
type IndexEntry struct {
	ID     string    `json:"id"`
	Vector []float32 `json:"vector"`
	Chunk  Chunk     `json:"chunk"`
}

// SearchResult is one entry returned by a similarity query.
type SearchResult struct {
	Entry IndexEntry `json:"entry"`
	Score float32    `json:"score"`
}

// Embedder converts text into a fixed-dimension vector. The dimension is
// fixed per provider and the mapping is deterministic for identical
// input. It must be stable between index build and query for a given
// index instance.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex stores embedded chunks and answers nearest-neighbor
// queries.
type VectorIndex interface {
	// Build embeds every chunk, stores all (vector, chunk) pairs, and
	// persists them. It never partially succeeds: if embedding fails for
	// any chunk the whole build fails and no partial index is persisted.
	Build(ctx context.Context, chunks []Chunk) error

	// Load restores a previously persisted index into memory. It returns
	// false, without error, when no persisted index exists.
	Load(ctx context.Context) (bool, error)

	// Query embeds the input text once and returns the top-k entries by
	// descending cosine similarity, ties broken by insertion order. An
	// empty index yields an empty result list, not an error.
	Query(ctx context.Context, text string, k int) ([]SearchResult, error)

	// Len reports the number of entries currently held in memory.
	Len() int
}
