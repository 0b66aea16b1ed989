package location

import (
	"context"
	"sync"
	"time"

	"costasight-comparables/internal/models"
)

// Cache is the shared precision cache. Only precise results are ever written;
// enforcing that is the resolver's job, not the backend's.
type Cache interface {
	Get(ctx context.Context, key string) (*models.LocationResult, bool)
	Set(ctx context.Context, key string, result *models.LocationResult, ttl time.Duration) error
}

type memoryEntry struct {
	result    models.LocationResult
	expiresAt time.Time
}

// MemoryCache is an in-process Cache with lazy TTL expiry.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*models.LocationResult, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	result := entry.result
	return &result, true
}

func (c *MemoryCache) Set(_ context.Context, key string, result *models.LocationResult, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{
		result:    *result,
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

// Len returns the number of live entries. Used by tests.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
