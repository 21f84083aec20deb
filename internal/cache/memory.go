package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"rankings-api/internal/models"
)

// MemoryCache implements Service using in-memory storage
type MemoryCache struct {
	entries map[string]*memoryEntry
	mutex   sync.RWMutex
}

// memoryEntry is a single cached value with its expiration
type memoryEntry struct {
	value     interface{}
	expiresAt time.Time
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() Service {
	return newMemoryCache()
}

// newMemoryCache creates the concrete implementation
func newMemoryCache() *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]*memoryEntry),
	}

	go c.evictExpired()

	return c
}

// Get retrieves a cached value for the given key
func (m *MemoryCache) Get(ctx context.Context, key string) (interface{}, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	entry, exists := m.entries[key]
	if !exists {
		return nil, models.ErrCacheMiss
	}

	// Expired entries are misses; the background sweep reclaims them
	if time.Now().After(entry.expiresAt) {
		return nil, models.ErrCacheMiss
	}

	return entry.value, nil
}

// Set stores a value with the specified TTL
func (m *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("TTL must be positive, got: %v", ttl)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.entries[key] = &memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes an entry from the cache
func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.entries, key)
	return nil
}

// evictExpired periodically removes expired entries
func (m *MemoryCache) evictExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()

		m.mutex.Lock()
		for key, entry := range m.entries {
			if now.After(entry.expiresAt) {
				delete(m.entries, key)
			}
		}
		m.mutex.Unlock()
	}
}

// Len returns the current number of cached entries (for monitoring)
func (m *MemoryCache) Len() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.entries)
}
