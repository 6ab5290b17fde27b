package cache

import (
	"sync"
	"time"

	"aide/internal/domain"
)

// QueryCache memoizes ranked candidate lists per query string. Each entry is
// tagged with the index generation it was computed at and is discarded once
// the index has changed.
type QueryCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	order   []string
	maxSize int
	ttl     time.Duration
}

type cacheEntry struct {
	results   []domain.Candidate
	timestamp time.Time
	indexGen  uint64
}

func NewQueryCache(maxSize int, ttl time.Duration) *QueryCache {
	if maxSize <= 0 {
		maxSize = 64
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &QueryCache{
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

func (c *QueryCache) Get(query string, gen uint64) ([]domain.Candidate, bool) {
	c.mu.RLock()
	entry, exists := c.entries[query]
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if time.Since(entry.timestamp) > c.ttl || entry.indexGen != gen {
		c.mu.Lock()
		delete(c.entries, query)
		c.removeFromOrder(query)
		c.mu.Unlock()
		return nil, false
	}

	c.mu.Lock()
	c.moveToEnd(query)
	c.mu.Unlock()

	return entry.results, true
}

func (c *QueryCache) Put(query string, gen uint64, results []domain.Candidate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &cacheEntry{
		results:   results,
		timestamp: time.Now(),
		indexGen:  gen,
	}

	if _, exists := c.entries[query]; exists {
		c.entries[query] = entry
		c.moveToEnd(query)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[query] = entry
	c.order = append(c.order, query)
}

func (c *QueryCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*cacheEntry)
	c.order = c.order[:0]
}

func (c *QueryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *QueryCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *QueryCache) moveToEnd(key string) {
	c.removeFromOrder(key)
	c.order = append(c.order, key)
}

func (c *QueryCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Ranker ranks indexed names against a raw query.
type Ranker interface {
	Query(raw string) []domain.Candidate
	Generation() uint64
}

// CachedRanker serves repeated queries from a QueryCache while the underlying
// index is unchanged.
type CachedRanker struct {
	ranker Ranker
	cache  *QueryCache
}

func NewCachedRanker(ranker Ranker, cache *QueryCache) *CachedRanker {
	return &CachedRanker{
		ranker: ranker,
		cache:  cache,
	}
}

func (r *CachedRanker) Query(raw string) []domain.Candidate {
	gen := r.ranker.Generation()
	if results, hit := r.cache.Get(raw, gen); hit {
		return results
	}

	results := r.ranker.Query(raw)
	r.cache.Put(raw, gen, results)
	return results
}

func (r *CachedRanker) Generation() uint64 {
	return r.ranker.Generation()
}
