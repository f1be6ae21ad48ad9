package engine

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheCapacity bounds the result cache when no capacity is configured.
const DefaultCacheCapacity = 50

// resultCache memoizes pipeline results against their cache key. It is a
// bounded store with least-recently-used eviction, backed by hashicorp's
// synchronized LRU, so interleaved lookups and inserts from concurrent
// ProcessData calls are safe; concurrent inserts of the same key are
// last-writer-wins.
type resultCache struct {
	entries *lru.Cache[string, *ProcessingResult]
}

func newResultCache(capacity int) (*resultCache, error) {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	entries, err := lru.New[string, *ProcessingResult](capacity)
	if err != nil {
		return nil, fmt.Errorf("could not initialize result cache: %w", err)
	}
	return &resultCache{entries: entries}, nil
}

func (c *resultCache) Get(key string) (*ProcessingResult, bool) {
	return c.entries.Get(key)
}

func (c *resultCache) Put(key string, result *ProcessingResult) {
	c.entries.Add(key, result)
}

// Clear resets the store unconditionally.
func (c *resultCache) Clear() {
	c.entries.Purge()
}

func (c *resultCache) Len() int {
	return c.entries.Len()
}
