// Package mock provides hand-written mocks of the assistant domain
// interfaces for use in tests.
package mock

import (
	"context"

	assistant "github.com/chaurasiavikash/openSimAssistant"
)

var _ assistant.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of assistant.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
