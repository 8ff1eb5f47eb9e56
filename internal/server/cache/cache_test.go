package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// TestCache_BasicOperations tests set, get and delete.
func TestCache_BasicOperations(t *testing.T) {
	c := New(time.Minute, time.Minute)

	if _, found := c.Get("books:"); found {
		t.Error("expected miss on empty cache")
	}

	c.Set("books:", []string{"a", "b"})
	v, found := c.Get("books:")
	if !found {
		t.Fatal("expected hit after Set")
	}
	if got := v.([]string); len(got) != 2 {
		t.Errorf("expected 2 items, got %v", got)
	}

	c.Delete("books:")
	if _, found := c.Get("books:"); found {
		t.Error("expected miss after Delete")
	}

	stats := c.GetStats()
	if stats.Hits != 1 || stats.Misses != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

// TestCache_SetWithTTL tests custom expiry.
func TestCache_SetWithTTL(t *testing.T) {
	c := New(time.Minute, time.Minute)
	c.SetWithTTL("short", 1, 20*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	if _, found := c.Get("short"); found {
		t.Error("expected entry to expire")
	}
}

// TestCache_Clear tests that Clear drops every entry.
func TestCache_Clear(t *testing.T) {
	c := New(time.Minute, time.Minute)
	for i := 0; i < 10; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}
	if c.ItemCount() != 10 {
		t.Fatalf("expected 10 items, got %d", c.ItemCount())
	}
	c.Clear()
	if c.ItemCount() != 0 {
		t.Errorf("expected 0 items after Clear, got %d", c.ItemCount())
	}
}

// TestCache_ConcurrentAccess tests concurrent readers and writers.
func TestCache_ConcurrentAccess(t *testing.T) {
	c := New(time.Minute, time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%5)
			for j := 0; j < 100; j++ {
				c.Set(key, j)
				c.Get(key)
			}
			if i%7 == 0 {
				c.Clear()
			}
		}(i)
	}
	wg.Wait()

	stats := c.GetStats()
	if stats.Hits+stats.Misses != 2000 {
		t.Errorf("expected 2000 lookups, got %d", stats.Hits+stats.Misses)
	}
}
