package external

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"healthadvisor.app/internal/ports"
	"healthadvisor.app/pkg/errors"
)

// CacheParams configures the provider response cache decorators
type CacheParams struct {
	Cache   ports.CacheProvider
	TTL     time.Duration
	Metrics ports.MetricsSink
	Logger  ports.Logger
}

func (p CacheParams) validate() error {
	if p.Cache == nil {
		return errors.NewValidationError("cache provider is required")
	}
	if p.TTL <= 0 {
		return errors.NewValidationError("cache TTL must be positive")
	}
	if p.Metrics == nil {
		return errors.NewValidationError("metrics is required")
	}
	if p.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	return nil
}

func cacheKey(prefix, city, country string) string {
	return fmt.Sprintf("%s:%s:%s", prefix, strings.ToUpper(country), strings.ToLower(strings.TrimSpace(city)))
}

// responseCache stores JSON-encoded provider results. Failures never reach
// the caller; they are logged and treated as misses.
type responseCache struct {
	CacheParams
	service string
}

func (c *responseCache) load(ctx context.Context, key string, out interface{}) bool {
	raw, err := c.Cache.Get(ctx, key)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			c.Logger.Warn("Provider cache read failed",
				ports.F("provider", c.service),
				ports.F("key", key),
				ports.F("error", err.Error()))
		}
		c.Metrics.RecordCacheLookup(c.service, false)
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		c.Logger.Warn("Provider cache entry is corrupt",
			ports.F("provider", c.service),
			ports.F("key", key),
			ports.F("error", err.Error()))
		c.evict(ctx, key)
		c.Metrics.RecordCacheLookup(c.service, false)
		return false
	}

	c.Metrics.RecordCacheLookup(c.service, true)
	c.Logger.Debug("Provider cache hit",
		ports.F("provider", c.service),
		ports.F("key", key))
	return true
}

// evict drops an unreadable entry so it is not served again if the refetch fails
func (c *responseCache) evict(ctx context.Context, key string) {
	if err := c.Cache.Delete(ctx, key); err != nil {
		c.Logger.Warn("Provider cache evict failed",
			ports.F("provider", c.service),
			ports.F("key", key),
			ports.F("error", err.Error()))
	}
}

func (c *responseCache) store(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.Logger.Warn("Provider cache encode failed",
			ports.F("provider", c.service),
			ports.F("key", key),
			ports.F("error", err.Error()))
		return
	}

	if err := c.Cache.Set(ctx, key, raw, c.TTL); err != nil {
		c.Logger.Warn("Provider cache write failed",
			ports.F("provider", c.service),
			ports.F("key", key),
			ports.F("error", err.Error()))
	}
}

// CachedAirQualityProvider serves repeated lookups for the same city from cache
type CachedAirQualityProvider struct {
	provider ports.AirQualityProvider
	cache    *responseCache
}

func NewCachedAirQualityProvider(provider ports.AirQualityProvider, params CacheParams) (ports.AirQualityProvider, error) {
	if provider == nil {
		return nil, errors.NewValidationError("air quality provider is required")
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	return &CachedAirQualityProvider{
		provider: provider,
		cache:    &responseCache{CacheParams: params, service: provider.GetProviderName()},
	}, nil
}

func (p *CachedAirQualityProvider) GetAirQuality(ctx context.Context, city, country string) ([]ports.AirQualityData, error) {
	key := cacheKey("airquality", city, country)

	var cached []ports.AirQualityData
	if p.cache.load(ctx, key, &cached) {
		return cached, nil
	}

	data, err := p.provider.GetAirQuality(ctx, city, country)
	if err != nil {
		return nil, err
	}

	if data == nil {
		data = []ports.AirQualityData{}
	}
	p.cache.store(ctx, key, data)
	return data, nil
}

func (p *CachedAirQualityProvider) GetProviderName() string {
	return p.provider.GetProviderName()
}

// CachedWeatherProvider serves repeated lookups for the same city from cache
type CachedWeatherProvider struct {
	provider ports.WeatherProvider
	cache    *responseCache
}

func NewCachedWeatherProvider(provider ports.WeatherProvider, params CacheParams) (ports.WeatherProvider, error) {
	if provider == nil {
		return nil, errors.NewValidationError("weather provider is required")
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	return &CachedWeatherProvider{
		provider: provider,
		cache:    &responseCache{CacheParams: params, service: provider.GetProviderName()},
	}, nil
}

func (p *CachedWeatherProvider) GetCurrentWeather(ctx context.Context, city, country string) (*ports.WeatherData, error) {
	key := cacheKey("weather", city, country)

	var cached ports.WeatherData
	if p.cache.load(ctx, key, &cached) {
		return &cached, nil
	}

	data, err := p.provider.GetCurrentWeather(ctx, city, country)
	if err != nil {
		return nil, err
	}

	if data != nil {
		p.cache.store(ctx, key, data)
	}
	return data, nil
}

func (p *CachedWeatherProvider) GetProviderName() string {
	return p.provider.GetProviderName()
}
