package cache

import (
	"context"
	"sync"
	"time"

	"github.com/wishbee-dev/wishbee-ai/internal/domain"
)

// cacheItem represents a single cached extraction with expiration
type cacheItem struct {
	Record     *domain.ProductRecord
	Expiration time.Time
}

// MemoryCache is a thread-safe in-memory cache of extraction results with
// TTL support. Records are copied on write and read so a cached record can
// never be mutated by a caller.
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		data: make(map[string]cacheItem),
	}

	// Start cleanup goroutine to remove expired entries every 10 minutes
	go cache.cleanupExpired()

	return cache
}

// Get retrieves a product record from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) (*domain.ProductRecord, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return nil, domain.ErrCacheMiss
	}

	// Check if expired
	if time.Now().After(item.Expiration) {
		return nil, domain.ErrCacheMiss
	}

	return copyRecord(item.Record), nil
}

// Set stores a product record in the cache with TTL
func (c *MemoryCache) Set(ctx context.Context, key string, record *domain.ProductRecord, ttl time.Duration) error {
	if record == nil {
		return nil
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		Record:     copyRecord(record),
		Expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// cleanupExpired removes expired entries from the cache periodically
func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for key, item := range c.data {
			if now.After(item.Expiration) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}

// Size returns the current number of items in the cache (for debugging/monitoring)
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheItem)
}

// copyRecord deep-copies a product record, including pointer fields and
// the attributes map
func copyRecord(record *domain.ProductRecord) *domain.ProductRecord {
	if record == nil {
		return nil
	}

	out := *record

	if record.Price != nil {
		price := *record.Price
		out.Price = &price
	}
	if record.ImageURL != nil {
		img := *record.ImageURL
		out.ImageURL = &img
	}
	if record.ProductLink != nil {
		link := *record.ProductLink
		out.ProductLink = &link
	}
	if record.Attributes != nil {
		out.Attributes = make(map[string]string, len(record.Attributes))
		for k, v := range record.Attributes {
			out.Attributes[k] = v
		}
	}

	return &out
}
