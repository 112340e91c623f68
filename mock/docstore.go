package mock

import (
	"context"

	assistant "github.com/chaurasiavikash/openSimAssistant"
)

var _ assistant.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of assistant.DocumentStore.
type DocumentStore struct {
	SaveFn func(ctx context.Context, docs []*assistant.Document) error
	LoadFn func(ctx context.Context) ([]*assistant.Document, error)
}

func (s *DocumentStore) Save(ctx context.Context, docs []*assistant.Document) error {
	return s.SaveFn(ctx, docs)
}

func (s *DocumentStore) Load(ctx context.Context) ([]*assistant.Document, error) {
	return s.LoadFn(ctx)
}
