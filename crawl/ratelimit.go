package crawl

import (
	"context"
	"sync"

	assistant "github.com/chaurasiavikash/openSimAssistant"
	"golang.org/x/time/rate"
)

var _ assistant.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter enforces politeness delays per domain using token
// buckets. Each domain gets its own limiter, so requests to different
// hosts proceed independently while the request rate within a host is
// bounded.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per
// second per domain, with a burst of 1 (no bursting). A non-positive
// rate falls back to one request per second.
func NewDomainLimiter(rps float64) *DomainLimiter {
	if rps <= 0 {
		rps = 1
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait
// completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
