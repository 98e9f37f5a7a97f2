package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// URLCache is an expiring in-memory string cache. It backs short-lived signed
// download URLs and the last-known export settings fallback.
type URLCache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func NewURLCache() *URLCache {
	return &URLCache{entries: make(map[string]entry)}
}

// Get returns the cached value for key if present and not expired.
func (c *URLCache) Get(key string) (string, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return "", false
	}
	return e.value, true
}

// Set stores value under key until expiresAt.
func (c *URLCache) Set(key, value string, expiresAt time.Time) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: expiresAt}
	c.mu.Unlock()
}

// Delete removes key from the cache.
func (c *URLCache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear drops expired entries. Called periodically by the app's cleanup task.
func (c *URLCache) Clear() {
	now := time.Now()

	c.mu.Lock()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

// Len returns the number of entries currently held, expired or not.
func (c *URLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
