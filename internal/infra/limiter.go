package infra

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a token bucket: up to maxTokens requests at once, one
// token added back every refillRate.
type RateLimiter struct {
	mu         sync.Mutex
	tokens     int
	maxTokens  int
	refillRate time.Duration
	lastRefill time.Time
	now        func() time.Time
}

// NewRateLimiter creates a limiter that starts full.
func NewRateLimiter(maxTokens int, refillRate time.Duration) *RateLimiter {
	if maxTokens < 1 {
		maxTokens = 1
	}
	return &RateLimiter{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: time.Now(),
		now:        time.Now,
	}
}

// PerSecond returns a limiter allowing rps requests per second with bursts
// of the same size, or nil when rps is not positive. A nil limiter never
// blocks.
func PerSecond(rps int) *RateLimiter {
	if rps <= 0 {
		return nil
	}
	return NewRateLimiter(rps, time.Second/time.Duration(rps))
}

// Wait blocks until a token is available or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl == nil {
		return nil
	}
	for {
		rl.mu.Lock()
		rl.refill()
		if rl.tokens > 0 {
			rl.tokens--
			rl.mu.Unlock()
			return nil
		}
		wait := rl.refillRate - rl.now().Sub(rl.lastRefill)
		rl.mu.Unlock()

		if wait <= 0 {
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// refill adds tokens for the elapsed periods. Must be called with mu held.
func (rl *RateLimiter) refill() {
	now := rl.now()
	elapsed := now.Sub(rl.lastRefill)
	if elapsed < rl.refillRate {
		return
	}
	periods := int(elapsed / rl.refillRate)
	rl.tokens = min(rl.tokens+periods, rl.maxTokens)
	rl.lastRefill = rl.lastRefill.Add(time.Duration(periods) * rl.refillRate)
}
