package infra

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestNewLoggerFormats(t *testing.T) {
	var buf bytes.Buffer
	NewLogger("info", "json", &buf).Info("hello", "cik", "0000320193")
	if !strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), `"cik":"0000320193"`) {
		t.Errorf("expected JSON record, got %s", buf.String())
	}

	buf.Reset()
	NewLogger("warn", "text", &buf).Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info record should be filtered at warn level, got %s", buf.String())
	}
}

func TestPollerStopsWhenFuncReturnsFalse(t *testing.T) {
	var calls atomic.Int32
	p := StartPoller(context.Background(), 5*time.Millisecond, func(ctx context.Context) bool {
		return calls.Add(1) < 3
	})

	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("expected 3 calls, got %d", got)
	}
	if p.Running() {
		t.Error("expected poller to report stopped")
	}
}

func TestPollerStop(t *testing.T) {
	var calls atomic.Int32
	p := StartPoller(context.Background(), 5*time.Millisecond, func(ctx context.Context) bool {
		calls.Add(1)
		return true
	})
	time.Sleep(30 * time.Millisecond)
	p.Stop()
	p.Stop() // idempotent

	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	if calls.Load() != after {
		t.Errorf("poller kept running after Stop: %d -> %d", after, calls.Load())
	}
}

func TestPollerParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := StartPoller(ctx, time.Hour, func(ctx context.Context) bool { return true })
	cancel()

	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not observe parent cancellation")
	}
}

func TestNilPollerStop(t *testing.T) {
	var p *Poller
	p.Stop()
	if p.Running() {
		t.Error("nil poller should not be running")
	}
}

func TestCacheSetGetInvalidate(t *testing.T) {
	c := NewCache[string]("test", 2, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")
	if v, ok := c.Get("a"); !ok || v != "1" {
		t.Errorf("expected hit with 1, got %q %v", v, ok)
	}

	// "b" is now least recently used
	c.Set("c", "3")
	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	c.Invalidate("a")
	if _, ok := c.Get("a"); ok {
		t.Error("expected a to be invalidated")
	}
	c.Flush()
	if c.Len() != 0 {
		t.Errorf("expected empty cache after flush, got %d", c.Len())
	}
}

func TestCacheExpires(t *testing.T) {
	c := NewCache[int]("test-ttl", 10, 20*time.Millisecond)
	c.Set("k", 1)
	time.Sleep(50 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("expected entry to expire")
	}
}

func TestRateLimiterBurstThenBlocks(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := rl.Wait(ctx); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if err := rl.Wait(ctx); err == nil {
		t.Error("expected empty bucket to block until the context expired")
	}
}

func TestRateLimiterRefill(t *testing.T) {
	rl := NewRateLimiter(3, time.Second)
	start := rl.lastRefill
	now := start
	rl.now = func() time.Time { return now }

	rl.tokens = 0
	now = start.Add(2500 * time.Millisecond)
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}
	if rl.tokens != 1 {
		t.Errorf("expected 1 token left after refilling 2, got %d", rl.tokens)
	}
	if !rl.lastRefill.Equal(start.Add(2 * time.Second)) {
		t.Errorf("expected refill mark to advance by whole periods, got %v", rl.lastRefill.Sub(start))
	}

	now = start.Add(time.Hour)
	rl.mu.Lock()
	rl.refill()
	rl.mu.Unlock()
	if rl.tokens != 3 {
		t.Errorf("expected refill capped at 3, got %d", rl.tokens)
	}
}

func TestPerSecondDisabled(t *testing.T) {
	rl := PerSecond(0)
	if rl != nil {
		t.Fatal("expected nil limiter for 0 rps")
	}
	if err := rl.Wait(context.Background()); err != nil {
		t.Errorf("nil limiter should never block, got %v", err)
	}
}
