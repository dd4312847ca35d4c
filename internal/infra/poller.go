package infra

import (
	"context"
	"sync"
	"time"
)

// PollFunc is invoked on every tick. Returning false stops the poller.
type PollFunc func(ctx context.Context) bool

// Poller runs a function on a fixed interval until it asks to stop, Stop is
// called, or the parent context is cancelled. The first run happens one
// interval after Start; callers fetch once themselves before starting.
type Poller struct {
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// StartPoller launches fn every interval in its own goroutine.
func StartPoller(ctx context.Context, interval time.Duration, fn PollFunc) *Poller {
	ctx, cancel := context.WithCancel(ctx)
	p := &Poller{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(p.done)
		defer cancel()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !fn(ctx) {
					return
				}
			}
		}
	}()

	return p
}

// Stop cancels the poller and waits for the running tick, if any, to return.
// Safe to call more than once and on a nil Poller.
func (p *Poller) Stop() {
	if p == nil {
		return
	}
	p.stopOnce.Do(p.cancel)
	<-p.done
}

// Done is closed once the poller has exited.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

// Running reports whether the poller goroutine is still active.
func (p *Poller) Running() bool {
	if p == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}
