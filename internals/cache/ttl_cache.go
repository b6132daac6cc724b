// file: internals/cache/ttl_cache.go
package cache

import (
	"sync"
	"time"
)

// TTLCache is a bounded in-process cache with time-based eviction.
// When full it evicts the entry closest to expiry. Keys are explicit
// comparable structs at the call sites, never concatenated strings.
type TTLCache[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]entry[V]
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

func NewTTLCache[K comparable, V any](ttl time.Duration, capacity int) *TTLCache[K, V] {
	if capacity <= 0 {
		capacity = 256
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TTLCache[K, V]{
		entries:  make(map[K]entry[V], capacity),
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
	}
}

func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	// drop expired entries first
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}

	// still full: evict the entry closest to expiry
	if len(c.entries) >= c.capacity {
		if _, exists := c.entries[key]; !exists {
			var oldestKey K
			var oldestExp time.Time
			first := true
			for k, e := range c.entries {
				if first || e.expiresAt.Before(oldestExp) {
					oldestKey, oldestExp = k, e.expiresAt
					first = false
				}
			}
			if !first {
				delete(c.entries, oldestKey)
			}
		}
	}

	c.entries[key] = entry[V]{value: value, expiresAt: now.Add(c.ttl)}
}

func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *TTLCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
