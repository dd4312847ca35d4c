package state

import (
	"context"
	"strings"
	"sync"
)

// Snapshot is the observable state of a single-value container.
type Snapshot[T any] struct {
	Data    T
	Loaded  bool // Data holds a fetched value
	Loading bool
	Error   string
}

// Fetcher loads a value.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Resource is a container for a value fetched without parameters.
type Resource[T any] struct {
	cell[Snapshot[T]]
	fetch Fetcher[T]
}

// NewResource returns an unloaded resource. Call Load to fetch.
func NewResource[T any](fetch Fetcher[T]) *Resource[T] {
	return &Resource[T]{fetch: fetch}
}

// State returns the current snapshot.
func (r *Resource[T]) State() Snapshot[T] { return r.get() }

// Subscribe registers fn for every state change.
func (r *Resource[T]) Subscribe(fn func(Snapshot[T])) (unsubscribe func()) {
	return r.subscribe(fn)
}

// Load fetches the value and returns the resulting snapshot.
func (r *Resource[T]) Load(ctx context.Context) Snapshot[T] {
	snap, _ := load(ctx, &r.cell, r.fetch)
	return snap
}

// Refresh re-runs the fetch.
func (r *Resource[T]) Refresh(ctx context.Context) Snapshot[T] { return r.Load(ctx) }

// load runs fetch under a new request token. It reports whether the result
// was committed.
func load[T any](ctx context.Context, c *cell[Snapshot[T]], fetch Fetcher[T]) (Snapshot[T], bool) {
	token := c.begin(func(s *Snapshot[T]) {
		s.Loading = true
		s.Error = ""
	})

	data, err := fetch(ctx)

	return c.commit(token, func(s *Snapshot[T]) {
		s.Loading = false
		switch {
		case err == nil:
			s.Data = data
			s.Loaded = true
		case skipped(err):
			var zero T
			s.Data, s.Loaded = zero, false
		default:
			s.Error = err.Error()
		}
	})
}

// KeyedFetcher loads the value identified by key.
type KeyedFetcher[T any] func(ctx context.Context, key string) (T, error)

// Keyed is a container whose fetch depends on an optional identifier such as
// a CIK or accession number. With no key it stays empty and never fetches.
type Keyed[T any] struct {
	cell[Snapshot[T]]
	fetch KeyedFetcher[T]

	keyMu sync.Mutex
	key   string
}

// NewKeyed returns a container with no key.
func NewKeyed[T any](fetch KeyedFetcher[T]) *Keyed[T] {
	return &Keyed[T]{fetch: fetch}
}

// State returns the current snapshot.
func (k *Keyed[T]) State() Snapshot[T] { return k.get() }

// Subscribe registers fn for every state change.
func (k *Keyed[T]) Subscribe(fn func(Snapshot[T])) (unsubscribe func()) {
	return k.subscribe(fn)
}

// Key returns the tracked identifier.
func (k *Keyed[T]) Key() string {
	k.keyMu.Lock()
	defer k.keyMu.Unlock()
	return k.key
}

// SetKey tracks key and fetches when it differs from the current one. An
// empty key clears the state without any request.
func (k *Keyed[T]) SetKey(ctx context.Context, key string) Snapshot[T] {
	key = strings.TrimSpace(key)

	k.keyMu.Lock()
	changed := key != k.key
	k.key = key
	k.keyMu.Unlock()

	if !changed && key != "" {
		return k.get()
	}
	k.reset(Snapshot[T]{})
	if key == "" {
		return k.get()
	}
	return k.Refresh(ctx)
}

// Refresh re-fetches the current key. It is a no-op without one.
func (k *Keyed[T]) Refresh(ctx context.Context) Snapshot[T] {
	key := k.Key()
	if key == "" {
		return k.get()
	}
	snap, _ := load(ctx, &k.cell, func(ctx context.Context) (T, error) {
		return k.fetch(ctx, key)
	})
	return snap
}
