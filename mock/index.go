package mock

import (
	"context"

	assistant "github.com/chaurasiavikash/openSimAssistant"
)

var _ assistant.VectorIndex = (*VectorIndex)(nil)

// VectorIndex is a mock implementation of assistant.VectorIndex.
type VectorIndex struct {
	BuildFn func(ctx context.Context, chunks []assistant.Chunk) error
	LoadFn  func(ctx context.Context) (bool, error)
	QueryFn func(ctx context.Context, text string, k int) ([]assistant.SearchResult, error)
	LenFn   func() int
}

func (v *VectorIndex) Build(ctx context.Context, chunks []assistant.Chunk) error {
	return v.BuildFn(ctx, chunks)
}

func (v *VectorIndex) Load(ctx context.Context) (bool, error) {
	return v.LoadFn(ctx)
}

func (v *VectorIndex) Query(ctx context.Context, text string, k int) ([]assistant.SearchResult, error) {
	return v.QueryFn(ctx, text, k)
}

func (v *VectorIndex) Len() int {
	if v.LenFn == nil {
		return 0
	}
	return v.LenFn()
}
