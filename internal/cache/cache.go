// Package cache provides an in-memory key/value store with per-entry TTL,
// an advisory capacity bound and statistics introspection. It is safe for
// concurrent use by multiple goroutines.
package cache

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// entryOverhead approximates the fixed bookkeeping cost of one entry
// (map slot, timestamps, interface header). Used only for stats.
const entryOverhead = 96

type entry struct {
	value     any
	createdAt time.Time
	expiresAt time.Time
}

// Cache is a TTL key/value store. Expiry is lazy: an expired entry is
// removed when it is next read, or during a sweep. The capacity bound is
// advisory: when the cache is full, Set removes expired entries before
// inserting, but never refuses the insert.
type Cache struct {
	mu         sync.RWMutex
	items      map[string]entry
	maxEntries int
}

// New creates an empty cache. maxEntries <= 0 disables admission control.
func New(maxEntries int) *Cache {
	return &Cache{
		items:      make(map[string]entry),
		maxEntries: maxEntries,
	}
}

// Get returns the live value for key. An expired entry is deleted and
// reported as absent.
func (c *Cache) Get(key string) (any, bool) {
	now := time.Now()

	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if now.After(e.expiresAt) {
		c.mu.Lock()
		// Re-check: another goroutine may have replaced the entry since
		// the read lock was dropped.
		if cur, ok := c.items[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Has reports whether key holds a live value, with the same lazy-expiry
// semantics as Get.
func (c *Cache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Set inserts or overwrites key with the given TTL. A non-positive TTL is a
// programming defect and panics. When the cache is at or over capacity the
// insert is preceded by an expired-entry sweep; if nothing has expired the
// cache grows past the bound.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		panic(fmt.Sprintf("cache: non-positive TTL %v for key %q", ttl, key))
	}
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries > 0 && len(c.items) >= c.maxEntries {
		c.sweepLocked(now)
	}
	c.items[key] = entry{
		value:     value,
		createdAt: now,
		expiresAt: now.Add(ttl),
	}
}

// Delete removes key and reports whether an entry was removed.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.items[key]
	delete(c.items, key)
	return ok
}

// Clear removes all entries and returns the number removed.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.items)
	c.items = make(map[string]entry)
	return n
}

// GetOrCompute returns the cached value for key, or invokes compute, stores
// its result under ttl and returns it. No single-flight guarantee is made:
// concurrent misses for the same key may each compute; last write wins and
// every caller receives the value it computed.
func (c *Cache) GetOrCompute(key string, ttl time.Duration, compute func() (any, error)) (any, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		return nil, err
	}
	c.Set(key, v, ttl)
	return v, nil
}

// Sweep removes all currently expired entries and returns the number removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sweepLocked(time.Now())
}

func (c *Cache) sweepLocked(now time.Time) int {
	removed := 0
	for k, e := range c.items {
		if now.After(e.expiresAt) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries currently stored, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// EntryStat describes one cache entry in a stats snapshot.
type EntryStat struct {
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Expired   bool      `json:"expired"`
	SizeBytes int       `json:"size_bytes"`
}

// Stats is an observability snapshot of the cache.
type Stats struct {
	TotalEntries      int         `json:"total_entries"`
	ActiveEntries     int         `json:"active_entries"`
	ExpiredEntries    int         `json:"expired_entries"`
	ApproxMemoryBytes int         `json:"approx_memory_bytes"`
	Entries           []EntryStat `json:"entries"`
}

// Stats returns a snapshot of the cache. It never evicts: expired entries
// are counted, not removed.
func (c *Cache) Stats() Stats {
	now := time.Now()

	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Stats{
		TotalEntries: len(c.items),
		Entries:      make([]EntryStat, 0, len(c.items)),
	}
	for k, e := range c.items {
		expired := now.After(e.expiresAt)
		if expired {
			s.ExpiredEntries++
		} else {
			s.ActiveEntries++
		}
		size := estimateSize(e.value)
		s.ApproxMemoryBytes += len(k) + size + entryOverhead
		s.Entries = append(s.Entries, EntryStat{
			Key:       k,
			CreatedAt: e.createdAt,
			ExpiresAt: e.expiresAt,
			Expired:   expired,
			SizeBytes: size,
		})
	}
	return s
}

// estimateSize approximates the in-memory footprint of a cached value via
// its JSON encoding. Good enough for observability, not an accounting tool.
func estimateSize(v any) int {
	switch x := v.(type) {
	case nil:
		return 0
	case string:
		return len(x)
	case []byte:
		return len(x)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return 0
	}
	return len(b)
}
