package infra

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "edgardash_cache_hits_total",
		Help: "Lookups answered from the in-memory cache",
	}, []string{"cache"})
	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "edgardash_cache_misses_total",
		Help: "Lookups that missed the in-memory cache",
	}, []string{"cache"})
)

// Cache is a size-bounded LRU whose entries expire ttl after they are set.
// It is safe for concurrent use.
type Cache[V any] struct {
	name string
	lru  *expirable.LRU[string, V]
}

// NewCache creates a cache holding at most size entries. name labels the
// hit and miss counters.
func NewCache[V any](name string, size int, ttl time.Duration) *Cache[V] {
	return &Cache[V]{name: name, lru: expirable.NewLRU[string, V](size, nil, ttl)}
}

// Get returns the cached value for key, if present and not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	v, ok := c.lru.Get(key)
	if ok {
		cacheHits.WithLabelValues(c.name).Inc()
	} else {
		cacheMisses.WithLabelValues(c.name).Inc()
	}
	return v, ok
}

// Set adds or replaces key.
func (c *Cache[V]) Set(key string, value V) {
	c.lru.Add(key, value)
}

// Invalidate removes key.
func (c *Cache[V]) Invalidate(key string) {
	c.lru.Remove(key)
}

// Flush removes everything.
func (c *Cache[V]) Flush() {
	c.lru.Purge()
}

// Len returns the number of entries, including expired ones not yet evicted.
func (c *Cache[V]) Len() int {
	return c.lru.Len()
}
