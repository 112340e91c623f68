package mock

import (
	"context"

	assistant "github.com/chaurasiavikash/openSimAssistant"
)

var _ assistant.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of assistant.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *assistant.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *assistant.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
