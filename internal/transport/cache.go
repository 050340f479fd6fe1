package transport

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache keeps successful response bodies keyed by URL.
// It uses patrickmn/go-cache for TTL-based expiry.
type Cache struct {
	store *gocache.Cache
}

// NewCache creates a new cache with the given TTL and cleanup interval.
// defaultTTL is the default expiration time for cache entries.
// cleanupInterval is how often expired items are removed from memory.
func NewCache(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a body from the cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	body, ok := v.([]byte)
	return body, ok
}

// Set stores a body in the cache with the default TTL.
func (c *Cache) Set(key string, body []byte) {
	c.store.Set(key, body, gocache.DefaultExpiration)
}

// Delete removes a body from the cache.
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// Clear removes all items from the cache.
func (c *Cache) Clear() {
	c.store.Flush()
}

// ItemCount returns the number of items in the cache.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}
