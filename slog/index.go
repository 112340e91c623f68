package slog

import (
	"context"
	"log/slog"
	"time"

	assistant "github.com/chaurasiavikash/openSimAssistant"
)

// Ensure LoggingVectorIndex implements assistant.VectorIndex.
var _ assistant.VectorIndex = (*LoggingVectorIndex)(nil)

// LoggingVectorIndex wraps a VectorIndex with debug logging.
type LoggingVectorIndex struct {
	next   assistant.VectorIndex
	logger *slog.Logger
}

// NewLoggingVectorIndex creates a new LoggingVectorIndex.
func NewLoggingVectorIndex(next assistant.VectorIndex, logger *slog.Logger) *LoggingVectorIndex {
	return &LoggingVectorIndex{next: next, logger: logger}
}

// Build delegates to the wrapped index and logs the operation.
func (i *LoggingVectorIndex) Build(ctx context.Context, chunks []assistant.Chunk) (err error) {
	defer func(begin time.Time) {
		i.logger.Info("index build",
			"chunks", len(chunks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Build(ctx, chunks)
}

// Load delegates to the wrapped index and logs the operation.
func (i *LoggingVectorIndex) Load(ctx context.Context) (loaded bool, err error) {
	defer func(begin time.Time) {
		i.logger.Info("index load",
			"loaded", loaded,
			"entries", i.next.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Load(ctx)
}

// Query delegates to the wrapped index and logs the operation.
func (i *LoggingVectorIndex) Query(ctx context.Context, text string, k int) (results []assistant.SearchResult, err error) {
	defer func(begin time.Time) {
		i.logger.Info("index query",
			"k", k,
			"results", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Query(ctx, text, k)
}

// Len delegates to the wrapped index.
func (i *LoggingVectorIndex) Len() int {
	return i.next.Len()
}
