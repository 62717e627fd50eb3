package simulator

import (
	"sync"
	"time"
)

// definitionCache is a TTL and size bounded cache for the static discount,
// combo and coupon definitions so the resolver does not re-read configuration
// on every order. Eviction is least-recently-used once maxEntries is reached.
type definitionCache struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	entries    map[string]*cacheEntry
	now        func() time.Time
}

type cacheEntry struct {
	value    interface{}
	loadedAt time.Time
	lastUsed time.Time
}

func newDefinitionCache(ttl time.Duration, maxEntries int) *definitionCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if maxEntries <= 0 {
		maxEntries = 16
	}
	return &definitionCache{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]*cacheEntry),
		now:        time.Now,
	}
}

// Get returns the cached value for key, invoking loader on a miss or when the
// entry's TTL has lapsed. Loader errors are returned without caching.
func (c *definitionCache) Get(key string, loader func() (interface{}, error)) (interface{}, error) {
	c.mu.Lock()
	now := c.now()
	if e, ok := c.entries[key]; ok && now.Sub(e.loadedAt) < c.ttl {
		e.lastUsed = now
		value := e.value
		c.mu.Unlock()
		return value, nil
	}
	c.mu.Unlock()

	value, err := loader()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}
	c.entries[key] = &cacheEntry{value: value, loadedAt: now, lastUsed: now}
	return value, nil
}

// Invalidate drops a single key.
func (c *definitionCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidateIfExpired sweeps out every entry past its TTL.
func (c *definitionCache) InvalidateIfExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, e := range c.entries {
		if now.Sub(e.loadedAt) >= c.ttl {
			delete(c.entries, key)
		}
	}
}

func (c *definitionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOldest removes the least recently used entry. Caller holds the lock.
func (c *definitionCache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for key, e := range c.entries {
		if oldestKey == "" || e.lastUsed.Before(oldest) {
			oldestKey = key
			oldest = e.lastUsed
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
