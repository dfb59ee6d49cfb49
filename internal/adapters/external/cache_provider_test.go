package external

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"healthadvisor.app/internal/config"
	"healthadvisor.app/internal/ports"
	"healthadvisor.app/pkg/errors"
)

func setupMockRedis(t *testing.T) (*miniredis.Miniredis, *config.RedisConfig) {
	t.Helper()

	mockRedis := miniredis.RunT(t)

	return mockRedis, &config.RedisConfig{
		Addr:         mockRedis.Addr(),
		DB:           0,
		DialTimeout:  5,
		ReadTimeout:  3,
		WriteTimeout: 3,
	}
}

// exerciseCacheProvider runs the CacheProvider contract against any backend
func exerciseCacheProvider(t *testing.T, provider ports.CacheProvider, expire func(key string)) {
	ctx := context.Background()
	require.NoError(t, provider.Ping(ctx))

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, provider.Set(ctx, "weather:FR:paris", []byte(`{"temperature":21}`), time.Minute))

		value, err := provider.Get(ctx, "weather:FR:paris")
		require.NoError(t, err)
		assert.JSONEq(t, `{"temperature":21}`, string(value))
	})

	t.Run("MissIsNotFound", func(t *testing.T) {
		value, err := provider.Get(ctx, "weather:FR:nowhere")
		assert.Nil(t, value)
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, provider.Set(ctx, "airquality:FR:lyon", []byte(`[]`), time.Minute))
		require.NoError(t, provider.Delete(ctx, "airquality:FR:lyon"))

		_, err := provider.Get(ctx, "airquality:FR:lyon")
		assert.True(t, errors.IsNotFoundError(err))

		require.NoError(t, provider.Delete(ctx, "airquality:FR:never-set"))
	})

	t.Run("Expiry", func(t *testing.T) {
		require.NoError(t, provider.Set(ctx, "weather:FR:nice", []byte(`{}`), time.Second))
		expire("weather:FR:nice")

		_, err := provider.Get(ctx, "weather:FR:nice")
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("Validation", func(t *testing.T) {
		_, err := provider.Get(ctx, "")
		assert.True(t, errors.IsValidationError(err))
		assert.True(t, errors.IsValidationError(provider.Set(ctx, "", []byte("x"), time.Minute)))
		assert.True(t, errors.IsValidationError(provider.Set(ctx, "k", nil, time.Minute)))
		assert.True(t, errors.IsValidationError(provider.Set(ctx, "k", []byte("x"), 0)))
		assert.True(t, errors.IsValidationError(provider.Delete(ctx, "")))
	})

	t.Run("Stats", func(t *testing.T) {
		stats := provider.GetStats()
		assert.Equal(t, stats.Hits+stats.Misses, stats.TotalOps)
		assert.GreaterOrEqual(t, stats.Hits, int64(1))
		assert.GreaterOrEqual(t, stats.Misses, int64(2))
		assert.InDelta(t, float64(stats.Hits)/float64(stats.TotalOps), stats.HitRatio, 1e-9)
	})
}

func TestMemoryCacheProvider(t *testing.T) {
	provider := NewMemoryCacheProvider()
	current := time.Now()
	provider.now = func() time.Time { return current }

	exerciseCacheProvider(t, provider, func(string) {
		current = current.Add(2 * time.Second)
	})
}

func TestMemoryCacheProvider_ExpiredEntryIsEvicted(t *testing.T) {
	provider := NewMemoryCacheProvider()
	current := time.Now()
	provider.now = func() time.Time { return current }
	ctx := context.Background()

	require.NoError(t, provider.Set(ctx, "k", []byte("v"), time.Second))
	current = current.Add(time.Minute)

	_, err := provider.Get(ctx, "k")
	assert.True(t, errors.IsNotFoundError(err))

	provider.mutex.RLock()
	_, stillThere := provider.data["k"]
	provider.mutex.RUnlock()
	assert.False(t, stillThere)
}

func TestMemoryCacheProvider_StoresCopy(t *testing.T) {
	provider := NewMemoryCacheProvider()
	ctx := context.Background()

	value := []byte("original")
	require.NoError(t, provider.Set(ctx, "k", value, time.Minute))
	value[0] = 'X'

	stored, err := provider.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(stored))
}

func TestMemoryCacheProvider_PingHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, NewMemoryCacheProvider().Ping(ctx), context.Canceled)
}

func TestRedisCacheProvider(t *testing.T) {
	mockRedis, redisConfig := setupMockRedis(t)

	provider, err := NewRedisCacheProvider(redisConfig)
	require.NoError(t, err)
	defer func() { _ = provider.Close() }()

	exerciseCacheProvider(t, provider, func(string) {
		mockRedis.FastForward(2 * time.Second)
	})
}

func TestRedisCacheProvider_StoresTTL(t *testing.T) {
	mockRedis, redisConfig := setupMockRedis(t)

	provider, err := NewRedisCacheProvider(redisConfig)
	require.NoError(t, err)
	defer func() { _ = provider.Close() }()

	require.NoError(t, provider.Set(context.Background(), "airquality:FR:paris", []byte(`[]`), 5*time.Minute))

	assert.Equal(t, 5*time.Minute, mockRedis.TTL("airquality:FR:paris"))
	value, err := mockRedis.Get("airquality:FR:paris")
	require.NoError(t, err)
	assert.Equal(t, "[]", value)
}

func TestRedisCacheProvider_ConnectionFailures(t *testing.T) {
	_, err := NewRedisCacheProvider(nil)
	assert.True(t, errors.IsConfigurationError(err))

	mockRedis, redisConfig := setupMockRedis(t)
	provider, err := NewRedisCacheProvider(redisConfig)
	require.NoError(t, err)
	defer func() { _ = provider.Close() }()

	mockRedis.Close()

	assert.True(t, errors.IsUpstreamError(provider.Ping(context.Background())))
	_, err = provider.Get(context.Background(), "weather:FR:paris")
	assert.True(t, errors.IsUpstreamError(err))

	_, err = NewRedisCacheProvider(redisConfig)
	assert.True(t, errors.IsUpstreamError(err))
}

func TestCacheProviderFactory_CreateCacheProvider(t *testing.T) {
	factory := NewCacheProviderFactory()

	t.Run("NilConfig", func(t *testing.T) {
		provider, err := factory.CreateCacheProvider(nil)
		assert.Nil(t, provider)
		assert.True(t, errors.IsConfigurationError(err))
	})

	t.Run("Memory", func(t *testing.T) {
		provider, err := factory.CreateCacheProvider(&config.CacheConfig{Type: config.CacheTypeMemory})
		require.NoError(t, err)
		assert.IsType(t, &MemoryCacheProvider{}, provider)
	})

	t.Run("Redis", func(t *testing.T) {
		_, redisConfig := setupMockRedis(t)

		provider, err := factory.CreateCacheProvider(&config.CacheConfig{Type: config.CacheTypeRedis, Redis: *redisConfig})
		require.NoError(t, err)
		require.IsType(t, &RedisCacheProvider{}, provider)
		_ = provider.(*RedisCacheProvider).Close()
	})

	t.Run("RedisUnreachable", func(t *testing.T) {
		mockRedis, redisConfig := setupMockRedis(t)
		mockRedis.Close()

		provider, err := factory.CreateCacheProvider(&config.CacheConfig{Type: config.CacheTypeRedis, Redis: *redisConfig})
		assert.Nil(t, provider)
		assert.True(t, errors.IsUpstreamError(err))
	})

	t.Run("Unknown", func(t *testing.T) {
		provider, err := factory.CreateCacheProvider(&config.CacheConfig{Type: config.CacheTypeUnknown})
		assert.Nil(t, provider)
		assert.True(t, errors.IsConfigurationError(err))
	})
}
