package cloudflare

import (
	"sync"
	"time"
)

// cache is a mutex-guarded map whose entries expire after a fixed TTL. The clock is injected at
// construction so that tests can run with a deterministic notion of time. The lock is only held
// for the duration of a single lookup or insert, never across a network call: two concurrent
// misses for the same key may both fetch, which is acceptable since fetches are idempotent.
type cache[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry[T]
}

type cacheEntry[T any] struct {
	insertedAt time.Time
	value      T
}

func newCache[T any](ttl time.Duration, now func() time.Time) *cache[T] {
	return &cache[T]{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry[T]),
	}
}

// get returns the cached value for the given key if it exists and has not expired.
func (c *cache[T]) get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || c.now().Sub(entry.insertedAt) > c.ttl {
		var zero T
		return zero, false
	}
	return entry.value, true
}

// put stores the given value under the given key, resetting its TTL.
func (c *cache[T]) put(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry[T]{insertedAt: c.now(), value: value}
}

// invalidate drops the entry for the given key, regardless of its TTL.
func (c *cache[T]) invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}
