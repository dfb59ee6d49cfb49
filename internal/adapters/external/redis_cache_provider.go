package external

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/go-redis/redis/v8"
	"healthadvisor.app/internal/config"
	"healthadvisor.app/internal/ports"
	"healthadvisor.app/pkg/errors"
)

const (
	cacheServiceName    = "redis"
	redisConnectTimeout = 5 * time.Second
)

// RedisCacheProvider implements CacheProvider port using Redis
type RedisCacheProvider struct {
	client *redis.Client
	stats  cacheCounters
}

// NewRedisCacheProvider connects to Redis and verifies the connection with a ping
func NewRedisCacheProvider(cfg *config.RedisConfig) (*RedisCacheProvider, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("redis config cannot be nil", nil)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  time.Duration(cfg.DialTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.NewUpstreamError(cacheServiceName, "failed to connect to Redis", err)
	}

	return &RedisCacheProvider{client: client}, nil
}

func (r *RedisCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.NewValidationError("cache key cannot be empty")
	}

	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			r.stats.miss()
			return nil, errors.NewNotFoundError("cache miss")
		}
		return nil, errors.NewUpstreamError(cacheServiceName, "redis get failed", err)
	}

	r.stats.hit()
	return val, nil
}

func (r *RedisCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}
	if value == nil {
		return errors.NewValidationError("cache value cannot be nil")
	}
	if ttl <= 0 {
		return errors.NewValidationError("cache TTL must be positive")
	}

	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.NewUpstreamError(cacheServiceName, "redis set failed", err)
	}

	return nil
}

func (r *RedisCacheProvider) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return errors.NewUpstreamError(cacheServiceName, "redis delete failed", err)
	}

	return nil
}

func (r *RedisCacheProvider) GetStats() ports.CacheStats {
	return r.stats.snapshot()
}

func (r *RedisCacheProvider) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return errors.NewUpstreamError(cacheServiceName, "redis ping failed", err)
	}
	return nil
}

func (r *RedisCacheProvider) Close() error {
	if err := r.client.Close(); err != nil {
		return errors.NewInternalError("failed to close Redis connection", err)
	}
	return nil
}
