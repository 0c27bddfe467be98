package cache

import "testing"

func (c *LRUCache[K, V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a should be cached")
	}
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatal("b should have been evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("a = %v,%v", v, ok)
	}
	if c.len() != 2 {
		t.Fatalf("len = %d", c.len())
	}
}

func TestLRUOverwriteAndPurge(t *testing.T) {
	c := NewLRUCache[string, int](3)
	c.Set("k", 1)
	c.Set("k", 2)
	if v, _ := c.Get("k"); v != 2 || c.len() != 1 {
		t.Fatalf("got %d len %d", v, c.len())
	}

	c.Purge()
	if _, ok := c.Get("k"); ok || c.len() != 0 {
		t.Fatal("purge should empty the cache")
	}
	c.Set("n", 4)
	if v, ok := c.Get("n"); !ok || v != 4 {
		t.Fatalf("cache unusable after purge: %v %v", v, ok)
	}
}

func TestLRUMinimumSize(t *testing.T) {
	c := NewLRUCache[int, int](0)
	c.Set(1, 1)
	c.Set(2, 2)
	if _, ok := c.Get(1); ok || c.len() != 1 {
		t.Fatalf("a non-positive size should hold one key, len = %d", c.len())
	}
}
