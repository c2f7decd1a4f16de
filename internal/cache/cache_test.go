package cache

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	c := New(0)
	c.Set("k", "v", time.Minute)

	got, ok := c.Get("k")
	if !ok {
		t.Fatal("Get returned absent for live entry")
	}
	if got != "v" {
		t.Fatalf("Get returned %v, want v", got)
	}
}

func TestGetAbsentKey(t *testing.T) {
	c := New(0)
	if _, ok := c.Get("missing"); ok {
		t.Fatal("Get returned present for missing key")
	}
}

func TestTTLExpiry(t *testing.T) {
	c := New(0)
	c.Set("k", "v", 30*time.Millisecond)

	if !c.Has("k") {
		t.Fatal("entry absent before TTL elapsed")
	}

	time.Sleep(50 * time.Millisecond)

	if c.Has("k") {
		t.Fatal("entry still present after TTL elapsed")
	}
	// Lazy expiry removed the entry on read.
	if c.Len() != 0 {
		t.Fatalf("Len() = %d after expired read, want 0", c.Len())
	}
}

func TestSetOverwrites(t *testing.T) {
	c := New(0)
	c.Set("k", "old", time.Minute)
	c.Set("k", "new", time.Minute)

	got, _ := c.Get("k")
	if got != "new" {
		t.Fatalf("Get returned %v after overwrite, want new", got)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
}

func TestDelete(t *testing.T) {
	c := New(0)
	c.Set("k", "v", time.Minute)

	if !c.Delete("k") {
		t.Fatal("Delete reported no removal for existing key")
	}
	if c.Delete("k") {
		t.Fatal("Delete reported removal for missing key")
	}
	if c.Has("k") {
		t.Fatal("key still present after Delete")
	}
}

func TestClear(t *testing.T) {
	c := New(0)
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)

	if n := c.Clear(); n != 2 {
		t.Fatalf("Clear returned %d, want 2", n)
	}
	if s := c.Stats(); s.TotalEntries != 0 {
		t.Fatalf("TotalEntries = %d after Clear, want 0", s.TotalEntries)
	}
}

func TestGetOrComputeStoresValue(t *testing.T) {
	c := New(0)
	calls := 0
	compute := func() (any, error) {
		calls++
		return "computed", nil
	}

	v, err := c.GetOrCompute("k", time.Minute, compute)
	if err != nil {
		t.Fatalf("GetOrCompute error: %v", err)
	}
	if v != "computed" {
		t.Fatalf("GetOrCompute returned %v, want computed", v)
	}

	// Second call must be served from cache.
	if _, err := c.GetOrCompute("k", time.Minute, compute); err != nil {
		t.Fatalf("GetOrCompute error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("compute ran %d times, want 1", calls)
	}
}

func TestGetOrComputeError(t *testing.T) {
	c := New(0)
	wantErr := errors.New("boom")

	_, err := c.GetOrCompute("k", time.Minute, func() (any, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("GetOrCompute error = %v, want %v", err, wantErr)
	}
	if c.Has("k") {
		t.Fatal("failed computation was cached")
	}
}

func TestSetPanicsOnNonPositiveTTL(t *testing.T) {
	c := New(0)

	defer func() {
		if recover() == nil {
			t.Fatal("Set with non-positive TTL did not panic")
		}
	}()
	c.Set("k", "v", 0)
}

func TestCapacitySweepRemovesExpired(t *testing.T) {
	c := New(3)
	c.Set("short1", 1, 20*time.Millisecond)
	c.Set("short2", 2, 20*time.Millisecond)
	c.Set("long", 3, time.Minute)

	time.Sleep(40 * time.Millisecond)

	// Cache is at capacity: this insert sweeps the two expired entries.
	c.Set("new", 4, time.Minute)

	s := c.Stats()
	if s.TotalEntries != 2 {
		t.Fatalf("TotalEntries = %d after admission sweep, want 2", s.TotalEntries)
	}
	if !c.Has("long") || !c.Has("new") {
		t.Fatal("admission sweep removed a live entry")
	}
}

func TestCapacityBoundIsAdvisory(t *testing.T) {
	c := New(2)
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	// Nothing expired: the insert still goes through.
	c.Set("c", 3, time.Minute)

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (soft limit)", c.Len())
	}
}

func TestStatsDoesNotEvict(t *testing.T) {
	c := New(0)
	c.Set("gone", 1, 10*time.Millisecond)
	c.Set("live", 2, time.Minute)

	time.Sleep(30 * time.Millisecond)

	s := c.Stats()
	if s.TotalEntries != 2 {
		t.Fatalf("TotalEntries = %d, want 2", s.TotalEntries)
	}
	if s.ActiveEntries != 1 || s.ExpiredEntries != 1 {
		t.Fatalf("active/expired = %d/%d, want 1/1", s.ActiveEntries, s.ExpiredEntries)
	}

	// A second snapshot sees the same totals: Stats must not mutate.
	if again := c.Stats(); again.TotalEntries != 2 {
		t.Fatalf("TotalEntries = %d on second snapshot, want 2", again.TotalEntries)
	}
}

func TestStatsEntryMetadata(t *testing.T) {
	c := New(0)
	c.Set("k", "some value", time.Minute)

	s := c.Stats()
	if len(s.Entries) != 1 {
		t.Fatalf("Entries has %d elements, want 1", len(s.Entries))
	}

	e := s.Entries[0]
	if e.Key != "k" {
		t.Fatalf("entry key = %q, want k", e.Key)
	}
	if !e.ExpiresAt.After(e.CreatedAt) {
		t.Fatal("expiresAt not after createdAt")
	}
	if e.Expired {
		t.Fatal("live entry reported expired")
	}
	if e.SizeBytes != len("some value") {
		t.Fatalf("SizeBytes = %d, want %d", e.SizeBytes, len("some value"))
	}
	if s.ApproxMemoryBytes <= 0 {
		t.Fatal("ApproxMemoryBytes not positive")
	}
}

func TestSweep(t *testing.T) {
	c := New(0)
	c.Set("a", 1, 10*time.Millisecond)
	c.Set("b", 2, 10*time.Millisecond)
	c.Set("c", 3, time.Minute)

	time.Sleep(30 * time.Millisecond)

	if n := c.Sweep(); n != 2 {
		t.Fatalf("Sweep removed %d entries, want 2", n)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d after Sweep, want 1", c.Len())
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New(100)
	var wg sync.WaitGroup

	for i := range 8 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := range 200 {
				key := fmt.Sprintf("k%d", j%20)
				c.Set(key, n, time.Minute)
				c.Get(key)
				c.Has(key)
				if j%50 == 0 {
					c.Stats()
					c.Sweep()
				}
			}
		}(i)
	}
	wg.Wait()

	if c.Len() == 0 {
		t.Fatal("cache empty after concurrent writes")
	}
}
