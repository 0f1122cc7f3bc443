// Package cache is a small in-memory TTL cache used to avoid re-downloading the same
// provider documents on every request. Competition lists and finished matches don't
// change minute to minute, so holding on to a parsed result for a while saves a round
// trip to the upstream data host.
package cache

import (
	"fmt"
	"time"

	// ristretto is a concurrent, admission-controlled cache from Dgraph.
	// It's safe to call from many request goroutines at once without extra locking.
	"github.com/dgraph-io/ristretto"
)

// expectedEntrySize is a rough average entry size, used only to size ristretto's
// frequency counters. A competitions table is a few KB; one match's events run to MB.
const expectedEntrySize = 16 << 10

// Cache wraps a ristretto cache with a fixed time-to-live for every entry.
// Capacity is a byte budget: each entry is charged the cost passed to Set, and
// ristretto evicts entries once the total would exceed maxBytes.
type Cache struct {
	store *ristretto.Cache
	ttl   time.Duration
}

// New creates a cache holding at most maxBytes worth of entries, each expiring after ttl.
func New(maxBytes int64, ttl time.Duration) (*Cache, error) {
	if maxBytes < 1 {
		return nil, fmt.Errorf("cache: max bytes must be at least 1, got %d", maxBytes)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cache: ttl must be positive, got %s", ttl)
	}

	store, err := ristretto.NewCache(&ristretto.Config{
		// NumCounters should be ~10x the number of items the cache is expected to hold
		// (ristretto uses them to track access frequency for its admission policy).
		NumCounters:        max(10*(maxBytes/expectedEntrySize), 1000),
		MaxCost:            maxBytes,
		BufferItems:        64,
		// Costs passed to Set are already byte sizes. Without this ristretto adds the
		// size of its own bookkeeping struct to every entry.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return &Cache{store: store, ttl: ttl}, nil
}

// Get returns the cached value for key and whether it was found (and not yet expired).
func (c *Cache) Get(key string) (any, bool) {
	return c.store.Get(key)
}

// Set stores value under key for the cache's TTL, charging cost bytes against the budget.
// It reports whether the entry was admitted. An entry costing more than the whole budget
// is never stored, and once the cache is full ristretto may refuse a newcomer in favour
// of entries that are read more often.
//
// ristretto applies writes asynchronously; Wait blocks until this write is processed so
// a Get issued right after Set sees it.
func (c *Cache) Set(key string, value any, cost int64) bool {
	if cost < 1 {
		cost = 1
	}
	if !c.store.SetWithTTL(key, value, cost, c.ttl) {
		return false
	}
	c.store.Wait()
	_, ok := c.store.Get(key)
	return ok
}

// TTL returns how long entries live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Close stops ristretto's background goroutines. The cache must not be used afterwards.
func (c *Cache) Close() {
	c.store.Close()
}
