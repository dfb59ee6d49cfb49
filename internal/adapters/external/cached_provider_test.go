package external

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"healthadvisor.app/internal/ports"
	"healthadvisor.app/pkg/errors"
)

func newCacheParams(cache ports.CacheProvider) (CacheParams, *fakeMetrics, *testLogger) {
	metrics := &fakeMetrics{}
	logger := &testLogger{}
	return CacheParams{
		Cache:   cache,
		TTL:     time.Minute,
		Metrics: metrics,
		Logger:  logger,
	}, metrics, logger
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "airquality:FR:paris", cacheKey("airquality", " Paris ", "fr"))
	assert.Equal(t, "weather:DE:berlin", cacheKey("weather", "BERLIN", "DE"))
}

func TestNewCachedProviders_Validation(t *testing.T) {
	params, _, _ := newCacheParams(NewMemoryCacheProvider())

	_, err := NewCachedAirQualityProvider(nil, params)
	assert.True(t, errors.IsValidationError(err))

	_, err = NewCachedWeatherProvider(nil, params)
	assert.True(t, errors.IsValidationError(err))

	noCache := params
	noCache.Cache = nil
	_, err = NewCachedAirQualityProvider(&stubAirQualityProvider{}, noCache)
	assert.True(t, errors.IsValidationError(err))

	noTTL := params
	noTTL.TTL = 0
	_, err = NewCachedWeatherProvider(&stubWeatherProvider{}, noTTL)
	assert.True(t, errors.IsValidationError(err))
}

func TestCachedAirQualityProvider_HitAfterMiss(t *testing.T) {
	cache := NewMemoryCacheProvider()
	params, metrics, _ := newCacheParams(cache)
	inner := &stubAirQualityProvider{
		response: []ports.AirQualityData{{AQI: ptr(120.0), QualityLevel: ptr("Moderate")}},
	}

	provider, err := NewCachedAirQualityProvider(inner, params)
	require.NoError(t, err)

	first, err := provider.GetAirQuality(context.Background(), "Paris", "FR")
	require.NoError(t, err)
	second, err := provider.GetAirQuality(context.Background(), "paris", "FR")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first, second)
	assert.Equal(t, []cacheLookup{
		{service: ports.ServiceAirQuality, hit: false},
		{service: ports.ServiceAirQuality, hit: true},
	}, metrics.cacheLookups)

	stored, err := cache.Get(context.Background(), "airquality:FR:paris")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"aqi":120,"qualityLevel":"Moderate"}]`, string(stored))
}

func TestCachedAirQualityProvider_EmptyResultIsCached(t *testing.T) {
	params, _, _ := newCacheParams(NewMemoryCacheProvider())
	inner := &stubAirQualityProvider{}

	provider, err := NewCachedAirQualityProvider(inner, params)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		data, err := provider.GetAirQuality(context.Background(), "Nowhere", "FR")
		require.NoError(t, err)
		assert.Empty(t, data)
	}
	assert.Equal(t, 1, inner.calls)
}

func TestCachedAirQualityProvider_FailuresAreNotCached(t *testing.T) {
	params, _, _ := newCacheParams(NewMemoryCacheProvider())
	inner := &stubAirQualityProvider{err: errors.NewUpstreamError(ports.ServiceAirQuality, "down", nil)}

	provider, err := NewCachedAirQualityProvider(inner, params)
	require.NoError(t, err)

	_, err = provider.GetAirQuality(context.Background(), "Paris", "FR")
	assert.True(t, errors.IsUpstreamError(err))

	inner.err = nil
	inner.response = []ports.AirQualityData{{AQI: ptr(30.0)}}

	data, err := provider.GetAirQuality(context.Background(), "Paris", "FR")
	require.NoError(t, err)
	assert.Equal(t, 30.0, *data[0].AQI)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedAirQualityProvider_CountriesAreSeparate(t *testing.T) {
	params, _, _ := newCacheParams(NewMemoryCacheProvider())
	inner := &stubAirQualityProvider{response: []ports.AirQualityData{}}

	provider, err := NewCachedAirQualityProvider(inner, params)
	require.NoError(t, err)

	_, _ = provider.GetAirQuality(context.Background(), "Paris", "FR")
	_, _ = provider.GetAirQuality(context.Background(), "Paris", "US")

	assert.Equal(t, 2, inner.calls)
}

func TestCachedWeatherProvider_HitAfterMiss(t *testing.T) {
	params, metrics, _ := newCacheParams(NewMemoryCacheProvider())
	inner := &stubWeatherProvider{response: &ports.WeatherData{Temperature: ptr(31.0), Timestamp: "2024-06-01T10:00:00Z"}}

	provider, err := NewCachedWeatherProvider(inner, params)
	require.NoError(t, err)

	first, err := provider.GetCurrentWeather(context.Background(), "Nice", "FR")
	require.NoError(t, err)
	second, err := provider.GetCurrentWeather(context.Background(), "Nice", "FR")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first, second)
	require.Len(t, metrics.cacheLookups, 2)
	assert.True(t, metrics.cacheLookups[1].hit)
	assert.Equal(t, ports.ServiceWeather, provider.GetProviderName())
}

func TestCachedWeatherProvider_BrokenCacheFallsThrough(t *testing.T) {
	params, metrics, logger := newCacheParams(&failingCache{err: fmt.Errorf("connection refused")})
	inner := &stubWeatherProvider{response: &ports.WeatherData{Humidity: ptr(90.0)}}

	provider, err := NewCachedWeatherProvider(inner, params)
	require.NoError(t, err)

	data, err := provider.GetCurrentWeather(context.Background(), "Brest", "FR")

	require.NoError(t, err)
	assert.Equal(t, 90.0, *data.Humidity)
	assert.Equal(t, 1, inner.calls)
	require.Len(t, metrics.cacheLookups, 1)
	assert.False(t, metrics.cacheLookups[0].hit)

	warnings := logger.byLevel("WARN")
	require.Len(t, warnings, 2)
	assert.Equal(t, "Provider cache read failed", warnings[0].message)
	assert.Equal(t, "Provider cache write failed", warnings[1].message)
}

func TestCachedAirQualityProvider_CorruptEntryIsMiss(t *testing.T) {
	cache := NewMemoryCacheProvider()
	require.NoError(t, cache.Set(context.Background(), "airquality:FR:paris", []byte("{broken"), time.Minute))

	params, metrics, logger := newCacheParams(cache)
	inner := &stubAirQualityProvider{response: []ports.AirQualityData{{AQI: ptr(10.0)}}}

	provider, err := NewCachedAirQualityProvider(inner, params)
	require.NoError(t, err)

	data, err := provider.GetAirQuality(context.Background(), "Paris", "FR")

	require.NoError(t, err)
	assert.Equal(t, 10.0, *data[0].AQI)
	assert.Equal(t, 1, inner.calls)
	assert.False(t, metrics.cacheLookups[0].hit)
	assert.Len(t, logger.byLevel("WARN"), 1)
}

func TestCachedAirQualityProvider_CorruptEntryIsEvicted(t *testing.T) {
	cache := NewMemoryCacheProvider()
	require.NoError(t, cache.Set(context.Background(), "airquality:FR:paris", []byte("{broken"), time.Minute))

	params, _, _ := newCacheParams(cache)
	inner := &stubAirQualityProvider{err: errors.NewUpstreamError(ports.ServiceAirQuality, "down", nil)}

	provider, err := NewCachedAirQualityProvider(inner, params)
	require.NoError(t, err)

	_, err = provider.GetAirQuality(context.Background(), "Paris", "FR")
	require.True(t, errors.IsUpstreamError(err))

	_, err = cache.Get(context.Background(), "airquality:FR:paris")
	assert.True(t, errors.IsNotFoundError(err))
}
