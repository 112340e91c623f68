package mock

import (
	"context"

	assistant "github.com/chaurasiavikash/openSimAssistant"
)

var _ assistant.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of assistant.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.WaitFn == nil {
		return nil
	}
	return d.WaitFn(ctx, domain)
}
