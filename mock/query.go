package mock

import (
	"context"

	assistant "github.com/chaurasiavikash/openSimAssistant"
)

var _ assistant.QueryService = (*QueryService)(nil)

// QueryService is a mock implementation of assistant.QueryService.
type QueryService struct {
	ProcessQueryFn func(ctx context.Context, query string, k int) (*assistant.QueryResult, error)
	ClearHistoryFn func()
	HistoryFn      func() []assistant.ChatTurn
}

func (s *QueryService) ProcessQuery(ctx context.Context, query string, k int) (*assistant.QueryResult, error) {
	return s.ProcessQueryFn(ctx, query, k)
}

func (s *QueryService) ClearHistory() {
	if s.ClearHistoryFn != nil {
		s.ClearHistoryFn()
	}
}

func (s *QueryService) History() []assistant.ChatTurn {
	if s.HistoryFn == nil {
		return nil
	}
	return s.HistoryFn()
}
