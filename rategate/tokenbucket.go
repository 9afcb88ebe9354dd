package rategate

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// tokenBucketGate implements Gate on golang.org/x/time/rate. Some upstream
// client versions throttled with a token bucket instead of a window log; it
// tolerates bursts the sliding log would hold back, and keeps its state in
// process only.
type tokenBucketGate struct {
	mu      sync.Mutex
	quota   Quota
	limiter *rate.Limiter
}

func newTokenBucketGate(quota Quota) *tokenBucketGate {
	return &tokenBucketGate{
		quota:   quota,
		limiter: newBucketLimiter(quota),
	}
}

func newBucketLimiter(quota Quota) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(float64(quota.MaxCalls)/quota.Window.Seconds()), quota.MaxCalls)
}

func (g *tokenBucketGate) Acquire(ctx context.Context) error {
	g.mu.Lock()
	limiter := g.limiter
	g.mu.Unlock()

	if err := limiter.Wait(ctx); err != nil {
		return NewContextCancelledError(err)
	}
	return nil
}

func (g *tokenBucketGate) Peek(ctx context.Context) (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	tokens := g.limiter.Tokens()
	status := Status{Remaining: int(math.Floor(tokens))}
	if status.Remaining < 0 {
		status.Remaining = 0
	}
	if tokens < 1 {
		// Time until one full token is available again.
		deficit := 1 - tokens
		status.Reset = time.Now().Add(time.Duration(deficit / float64(g.limiter.Limit()) * float64(time.Second)))
	}
	return status, nil
}

func (g *tokenBucketGate) Reset(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.limiter = newBucketLimiter(g.quota)
	return nil
}

func (g *tokenBucketGate) Close() error {
	return nil
}
