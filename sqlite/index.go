package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"math"
	"sort"
	"sync"
	"time"

	assistant "github.com/chaurasiavikash/openSimAssistant"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultEmbedConcurrency bounds parallel embedding calls during Build.
const DefaultEmbedConcurrency = 4

// Compile-time interface verification.
var _ assistant.VectorIndex = (*IndexService)(nil)

// IndexService implements assistant.VectorIndex. Vectors live in memory
// for similarity search and are persisted to SQLite so the index
// survives restarts. Build replaces the persisted index in a single
// transaction, so a failed rebuild leaves the previous index intact.
type IndexService struct {
	db       *DB
	embedder assistant.Embedder

	// EmbedConcurrency bounds parallel embedding calls. Zero means
	// DefaultEmbedConcurrency.
	EmbedConcurrency int

	mu      sync.RWMutex
	entries []assistant.IndexEntry
}

// NewIndexService creates a new IndexService.
func NewIndexService(db *DB, embedder assistant.Embedder) *IndexService {
	return &IndexService{db: db, embedder: embedder}
}

// Build embeds the chunks and atomically replaces both the persisted
// and the in-memory index. Chunk order is preserved so equal-score
// query results tie-break on insertion order.
func (s *IndexService) Build(ctx context.Context, chunks []assistant.Chunk) error {
	if len(chunks) == 0 {
		return assistant.Errorf(assistant.EINVALID, "no chunks to index")
	}

	entries := make([]assistant.IndexEntry, len(chunks))

	concurrency := s.EmbedConcurrency
	if concurrency <= 0 {
		concurrency = DefaultEmbedConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			vector, err := s.embedder.Embed(gctx, chunk.Text)
			if err != nil {
				return err
			}
			entries[i] = assistant.IndexEntry{
				ID:     uuid.New().String(),
				Vector: vector,
				Chunk:  chunk,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	dimension := len(entries[0].Vector)
	for _, entry := range entries {
		if len(entry.Vector) != dimension {
			return assistant.Errorf(assistant.EINTERNAL, "inconsistent embedding dimensions: %d and %d", dimension, len(entry.Vector))
		}
	}

	if err := s.persist(ctx, entries, dimension); err != nil {
		return err
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	return nil
}

// persist replaces the stored index in a single transaction.
func (s *IndexService) persist(ctx context.Context, entries []assistant.IndexEntry, dimension int) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM index_entries`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM index_meta`); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO index_meta (id, dimension, built_at)
		VALUES (1, ?, ?)
	`, dimension, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	for position, entry := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO index_entries (id, position, text, title, source, section, type, chunk_index, vector)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, entry.ID, position, entry.Chunk.Text,
			entry.Chunk.Metadata.Title, entry.Chunk.Metadata.Source,
			entry.Chunk.Metadata.Section, string(entry.Chunk.Metadata.Type),
			entry.Chunk.Index, encodeVector(entry.Vector)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Load restores the in-memory index from SQLite. Returns false when no
// index has been built yet.
func (s *IndexService) Load(ctx context.Context) (bool, error) {
	var dimension int
	err := s.db.QueryRowContext(ctx, `SELECT dimension FROM index_meta WHERE id = 1`).Scan(&dimension)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, title, source, section, type, chunk_index, vector
		FROM index_entries
		ORDER BY position
	`)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	var entries []assistant.IndexEntry
	for rows.Next() {
		var entry assistant.IndexEntry
		var contentType string
		var blob []byte
		if err := rows.Scan(&entry.ID, &entry.Chunk.Text,
			&entry.Chunk.Metadata.Title, &entry.Chunk.Metadata.Source,
			&entry.Chunk.Metadata.Section, &contentType,
			&entry.Chunk.Index, &blob); err != nil {
			return false, err
		}
		entry.Chunk.Metadata.Type = assistant.ContentType(contentType)

		entry.Vector, err = decodeVector(blob, dimension)
		if err != nil {
			return false, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return false, err
	}

	if len(entries) == 0 {
		return false, nil
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	return true, nil
}

// Query embeds the query text and returns the k most similar entries by
// cosine similarity, highest score first.
func (s *IndexService) Query(ctx context.Context, text string, k int) ([]assistant.SearchResult, error) {
	if k <= 0 {
		return nil, assistant.Errorf(assistant.EINVALID, "k must be positive, got %d", k)
	}

	s.mu.RLock()
	entries := s.entries
	s.mu.RUnlock()

	if len(entries) == 0 {
		return nil, nil
	}

	queryVector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	results := make([]assistant.SearchResult, len(entries))
	for i, entry := range entries {
		results[i] = assistant.SearchResult{
			Entry: entry,
			Score: cosineSimilarity(queryVector, entry.Vector),
		}
	}

	// Stable sort keeps insertion order among equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Len returns the number of indexed entries.
func (s *IndexService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched dimensions or zero vectors score 0.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// encodeVector packs a vector as little-endian float32 bytes.
func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(f))
	}
	return buf
}

// decodeVector unpacks a vector, checking it against the expected
// dimension from the meta row.
func decodeVector(buf []byte, dimension int) ([]float32, error) {
	if len(buf) != 4*dimension {
		return nil, assistant.Errorf(assistant.EINTERNAL, "vector blob is %d bytes, want %d", len(buf), 4*dimension)
	}
	v := make([]float32, dimension)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return v, nil
}
