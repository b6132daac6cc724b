// file: internals/cache/ttl_cache_test.go
package cache

import (
	"testing"
	"time"
)

type stageKey struct {
	StageID uint
}

func TestTTLCacheGetSet(t *testing.T) {
	c := NewTTLCache[stageKey, string](time.Minute, 4)

	if _, ok := c.Get(stageKey{1}); ok {
		t.Fatal("empty cache must miss")
	}

	c.Set(stageKey{1}, "alpha")
	got, ok := c.Get(stageKey{1})
	if !ok || got != "alpha" {
		t.Fatalf("Get = (%q, %v), want (alpha, true)", got, ok)
	}

	c.Set(stageKey{1}, "beta")
	if got, _ := c.Get(stageKey{1}); got != "beta" {
		t.Errorf("overwrite: got %q, want beta", got)
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	now := base
	c := NewTTLCache[stageKey, string](time.Minute, 4)
	c.now = func() time.Time { return now }

	c.Set(stageKey{1}, "alpha")

	now = base.Add(59 * time.Second)
	if _, ok := c.Get(stageKey{1}); !ok {
		t.Fatal("entry expired too early")
	}

	now = base.Add(61 * time.Second)
	if _, ok := c.Get(stageKey{1}); ok {
		t.Fatal("entry should have expired")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not pruned, Len = %d", c.Len())
	}
}

func TestTTLCacheCapacityEviction(t *testing.T) {
	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	now := base
	c := NewTTLCache[stageKey, string](time.Minute, 2)
	c.now = func() time.Time { return now }

	c.Set(stageKey{1}, "oldest")
	now = base.Add(10 * time.Second)
	c.Set(stageKey{2}, "newer")
	now = base.Add(20 * time.Second)
	c.Set(stageKey{3}, "newest")

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	// the entry closest to expiry was evicted
	if _, ok := c.Get(stageKey{1}); ok {
		t.Error("closest-to-expiry entry should have been evicted")
	}
	if _, ok := c.Get(stageKey{2}); !ok {
		t.Error("entry 2 should survive")
	}
	if _, ok := c.Get(stageKey{3}); !ok {
		t.Error("entry 3 should survive")
	}
}

func TestTTLCacheSetExistingKeyAtCapacity(t *testing.T) {
	c := NewTTLCache[stageKey, int](time.Minute, 2)
	c.Set(stageKey{1}, 1)
	c.Set(stageKey{2}, 2)

	// refreshing a resident key must not evict anything
	c.Set(stageKey{2}, 22)

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	if got, _ := c.Get(stageKey{2}); got != 22 {
		t.Errorf("got %d, want 22", got)
	}
	if _, ok := c.Get(stageKey{1}); !ok {
		t.Error("resident key refresh evicted a neighbor")
	}
}

func TestTTLCacheDelete(t *testing.T) {
	c := NewTTLCache[stageKey, string](time.Minute, 4)
	c.Set(stageKey{1}, "alpha")
	c.Delete(stageKey{1})
	if _, ok := c.Get(stageKey{1}); ok {
		t.Error("deleted entry still present")
	}
	// deleting a missing key is a no-op
	c.Delete(stageKey{9})
}

func TestTTLCacheDefaults(t *testing.T) {
	c := NewTTLCache[stageKey, string](0, 0)
	if c.ttl != 5*time.Minute {
		t.Errorf("default ttl = %v", c.ttl)
	}
	if c.capacity != 256 {
		t.Errorf("default capacity = %d", c.capacity)
	}
}
