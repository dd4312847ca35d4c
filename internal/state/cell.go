// Package state holds the data-fetching containers that sit between the
// endpoint modules and the presentation layer. Each container owns a
// {data, loading, error} snapshot, never returns fetch errors from its
// loaders (they land in the snapshot), and can be observed with Subscribe.
//
// Overlapping loads on one container are ordered by a request sequence: a
// response that is not for the latest request is dropped, so a slow early
// search can never overwrite a newer one.
package state

import (
	"errors"
	"sync"

	"github.com/seenimoa/edgardash/internal/edgar"
)

// cell is a mutex-guarded snapshot with a request sequence and subscribers.
// Subscribers run outside the lock, on the goroutine that changed the state;
// they must not call back into a blocking method of the same container.
type cell[S any] struct {
	mu     sync.Mutex
	state  S
	seq    uint64
	subs   map[uint64]func(S)
	nextID uint64
}

func (c *cell[S]) get() S {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// begin starts a new request: it invalidates every in-flight one, applies
// mut and returns the token commit expects.
func (c *cell[S]) begin(mut func(*S)) uint64 {
	c.mu.Lock()
	c.seq++
	token := c.seq
	if mut != nil {
		mut(&c.state)
	}
	snap, subs := c.state, c.subscribers()
	c.mu.Unlock()

	notify(subs, snap)
	return token
}

// commit applies mut if token is still the latest request. It returns the
// resulting snapshot and whether the commit happened.
func (c *cell[S]) commit(token uint64, mut func(*S)) (S, bool) {
	c.mu.Lock()
	if token != c.seq {
		snap := c.state
		c.mu.Unlock()
		return snap, false
	}
	mut(&c.state)
	snap, subs := c.state, c.subscribers()
	c.mu.Unlock()

	notify(subs, snap)
	return snap, true
}

// reset replaces the state and invalidates in-flight requests.
func (c *cell[S]) reset(s S) {
	c.begin(func(st *S) { *st = s })
}

func (c *cell[S]) subscribe(fn func(S)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subs == nil {
		c.subs = make(map[uint64]func(S))
	}
	c.nextID++
	id := c.nextID
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// subscribers copies the subscriber list; c.mu must be held.
func (c *cell[S]) subscribers() []func(S) {
	if len(c.subs) == 0 {
		return nil
	}
	out := make([]func(S), 0, len(c.subs))
	for _, fn := range c.subs {
		out = append(out, fn)
	}
	return out
}

func notify[S any](subs []func(S), snap S) {
	for _, fn := range subs {
		fn(snap)
	}
}

// skipped reports whether err means a required identifier was absent, which
// containers treat as an empty result rather than a failure.
func skipped(err error) bool {
	return errors.Is(err, edgar.ErrMissingParam)
}
