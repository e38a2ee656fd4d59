// Package cache provides a TTL key-value store and a memoized-function
// wrapper built on it. Expiry is checked on read; entries are never swept in
// the background. Concurrent callers may recompute the same key in parallel,
// which is harmless duplicate work, not a correctness issue.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache is a concurrency-tolerant key-value cache with a fixed TTL.
type TTLCache[V any] struct {
	ttl     time.Duration
	now     func() time.Time
	entries sync.Map // string -> entry[V]
}

// NewTTLCache returns a cache whose entries expire ttl after being set.
func NewTTLCache[V any](ttl time.Duration) *TTLCache[V] {
	return &TTLCache[V]{ttl: ttl, now: time.Now}
}

// Get returns the cached value for key. A stale entry counts as a miss and is
// removed on the way out.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	var zero V
	v, ok := c.entries.Load(key)
	if !ok {
		return zero, false
	}
	e := v.(entry[V])
	if c.now().After(e.expiresAt) {
		c.entries.Delete(key)
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, replacing any previous entry and restarting its TTL.
func (c *TTLCache[V]) Set(key string, value V) {
	c.entries.Store(key, entry[V]{value: value, expiresAt: c.now().Add(c.ttl)})
}

// Clear drops all entries.
func (c *TTLCache[V]) Clear() {
	c.entries.Range(func(k, _ any) bool {
		c.entries.Delete(k)
		return true
	})
}

// SetClock overrides the cache's time source. Tests only.
func (c *TTLCache[V]) SetClock(now func() time.Time) {
	c.now = now
}

// Memoize wraps fn so that calls with equal derived keys return the cached
// result until the cache's TTL elapses. A failed call is never cached; the
// next call with the same key retries fn from scratch.
func Memoize[A, V any](c *TTLCache[V], keyFn func(A) string, fn func(A) (V, error)) func(A) (V, error) {
	return func(arg A) (V, error) {
		key := keyFn(arg)
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := fn(arg)
		if err != nil {
			var zero V
			return zero, err
		}
		c.Set(key, v)
		return v, nil
	}
}
