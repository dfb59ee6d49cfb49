package external

import (
	"context"
	"sync"
	"time"

	"healthadvisor.app/internal/ports"
	"healthadvisor.app/pkg/errors"
)

// MemoryCacheProvider is a process-local CacheProvider with per-entry expiry
type MemoryCacheProvider struct {
	data  map[string]memoryCacheItem
	mutex sync.RWMutex
	now   func() time.Time
	stats cacheCounters
}

type memoryCacheItem struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryCacheProvider() *MemoryCacheProvider {
	return &MemoryCacheProvider{
		data: make(map[string]memoryCacheItem),
		now:  time.Now,
	}
}

func (c *MemoryCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.NewValidationError("cache key cannot be empty")
	}

	c.mutex.RLock()
	item, exists := c.data[key]
	c.mutex.RUnlock()

	if !exists {
		c.stats.miss()
		return nil, errors.NewNotFoundError("cache miss")
	}

	if c.now().After(item.expiresAt) {
		c.evict(key, item.expiresAt)
		c.stats.miss()
		return nil, errors.NewNotFoundError("cache miss")
	}

	c.stats.hit()
	return item.data, nil
}

func (c *MemoryCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}
	if value == nil {
		return errors.NewValidationError("cache value cannot be nil")
	}
	if ttl <= 0 {
		return errors.NewValidationError("cache TTL must be positive")
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = memoryCacheItem{
		data:      stored,
		expiresAt: c.now().Add(ttl),
	}

	return nil
}

func (c *MemoryCacheProvider) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

func (c *MemoryCacheProvider) GetStats() ports.CacheStats {
	return c.stats.snapshot()
}

// Ping always succeeds for the in-process cache
func (c *MemoryCacheProvider) Ping(ctx context.Context) error {
	return ctx.Err()
}

// evict removes key only if it still holds the expired entry that was read
func (c *MemoryCacheProvider) evict(key string, expiresAt time.Time) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if item, ok := c.data[key]; ok && item.expiresAt.Equal(expiresAt) {
		delete(c.data, key)
	}
}

// cacheCounters tracks hits and misses for a cache backend
type cacheCounters struct {
	mutex  sync.RWMutex
	hits   int64
	misses int64
}

func (s *cacheCounters) hit() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.hits++
}

func (s *cacheCounters) miss() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.misses++
}

func (s *cacheCounters) snapshot() ports.CacheStats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	total := s.hits + s.misses
	hitRatio := float64(0)
	if total > 0 {
		hitRatio = float64(s.hits) / float64(total)
	}

	return ports.CacheStats{
		Hits:        s.hits,
		Misses:      s.misses,
		TotalOps:    total,
		HitRatio:    hitRatio,
		LastUpdated: time.Now(),
	}
}
