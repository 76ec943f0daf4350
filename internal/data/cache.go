package data

import (
	"os"
	"sync"
	"time"

	"grid-balance/internal/simulation"

	"github.com/google/uuid"
)

// CacheEntry is a completed run held for follow-up requests.
type CacheEntry struct {
	Result    *simulation.Result
	CreatedAt time.Time
	ExpiresAt time.Time
}

// ResultCache keeps completed runs in memory so clients can fetch hourly detail
// after a summary-only simulate call. Entries expire after the TTL.
type ResultCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
	now   func() time.Time
}

var globalCache *ResultCache
var cacheOnce sync.Once

// GetCache returns the process-wide cache. TTL comes from RESULT_CACHE_TTL
// (Go duration, default 1h).
func GetCache() *ResultCache {
	cacheOnce.Do(func() {
		ttl := 1 * time.Hour
		if ttlStr := os.Getenv("RESULT_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil && parsed > 0 {
				ttl = parsed
			}
		}
		globalCache = NewResultCache(ttl)

		go globalCache.cleanup(5 * time.Minute)
	})
	return globalCache
}

// NewResultCache creates an empty cache. It does not start the cleanup loop.
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		store: make(map[string]*CacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Put stores a result under a fresh run ID and returns the ID.
func (c *ResultCache) Put(res *simulation.Result) string {
	id := uuid.NewString()
	if c == nil {
		return id
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.store[id] = &CacheEntry{
		Result:    res,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}
	return id
}

// Get retrieves a result if available and not expired.
func (c *ResultCache) Get(id string) (*simulation.Result, bool) {
	if c == nil {
		return nil, false
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[id]
	if !exists {
		return nil, false
	}
	if c.now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Result, true
}

// Len is the number of stored entries, expired ones included until cleanup.
func (c *ResultCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Clear removes all entries from the cache
func (c *ResultCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

// Evict removes expired entries.
func (c *ResultCache) Evict() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.store {
		if now.After(entry.ExpiresAt) {
			delete(c.store, key)
		}
	}
}

// cleanup periodically removes expired entries
func (c *ResultCache) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for range ticker.C {
		c.Evict()
	}
}
