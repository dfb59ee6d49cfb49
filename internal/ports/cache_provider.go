package ports

import (
	"context"
	"time"
)

// CacheStats represents cache performance metrics
type CacheStats struct {
	Hits        int64
	Misses      int64
	TotalOps    int64
	HitRatio    float64
	LastUpdated time.Time
}

// CacheProvider defines the contract for caching operations
type CacheProvider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	GetStats() CacheStats
	Ping(ctx context.Context) error
}
