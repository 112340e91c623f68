package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/chaurasiavikash/openSimAssistant/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter_delays_requests_to_the_same_domain(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(20) // 50ms between requests

	ctx := context.Background()
	start := time.Now()
	require.NoError(t, limiter.Wait(ctx, "simtk.org"))
	require.NoError(t, limiter.Wait(ctx, "simtk.org"))
	require.NoError(t, limiter.Wait(ctx, "simtk.org"))

	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond,
		"third request should wait roughly two intervals")
}

func TestDomainLimiter_domains_are_independent(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(1) // 1s between requests per domain

	ctx := context.Background()
	start := time.Now()
	require.NoError(t, limiter.Wait(ctx, "a.example.org"))
	require.NoError(t, limiter.Wait(ctx, "b.example.org"))
	require.NoError(t, limiter.Wait(ctx, "c.example.org"))

	assert.Less(t, time.Since(start), 500*time.Millisecond,
		"first request to each domain should not wait")
}

func TestDomainLimiter_respects_context_cancellation(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(0.001)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	require.NoError(t, limiter.Wait(ctx, "slow.example.org"))
	err := limiter.Wait(ctx, "slow.example.org")
	assert.Error(t, err, "wait should fail once the context expires")
}
