package app

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"healthadvisor.app/internal/adapters/external"
	"healthadvisor.app/internal/adapters/infrastructure"
	"healthadvisor.app/internal/config"
	"healthadvisor.app/internal/ports"
	"healthadvisor.app/pkg/logger"
)

// DependencyContainer owns the adapters behind the application ports and
// the resources that must be released on shutdown
type DependencyContainer struct {
	config   *config.Config
	ports    *ports.ApplicationPorts
	metrics  *infrastructure.PrometheusMetrics
	closers  []io.Closer
	checkers map[string]ports.HealthChecker
}

func NewDependencyContainer(cfg *config.Config) (*DependencyContainer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	container := &DependencyContainer{
		config:   cfg,
		checkers: make(map[string]ports.HealthChecker),
	}

	if err := container.initializePorts(); err != nil {
		_ = container.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializePorts() error {
	slog.Info("Initializing ports...")

	appLogger, err := c.buildLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	c.metrics = infrastructure.NewPrometheusMetrics()

	clientParams := func(baseURL string) external.ClientParams {
		return external.ClientParams{BaseURL: baseURL, Timeout: c.config.Providers.Timeout}
	}
	airQuality := external.NewInstrumentedAirQualityProvider(
		external.NewAirQualityProviderAdapter(clientParams(c.config.Providers.AirQualityBaseURL)),
		c.metrics, appLogger)
	weather := external.NewInstrumentedWeatherProvider(
		external.NewWeatherProviderAdapter(clientParams(c.config.Providers.WeatherBaseURL)),
		c.metrics, appLogger)

	c.checkers[ports.ServiceAirQuality] = infrastructure.NewUpstreamConfigHealthChecker(
		ports.ServiceAirQuality, c.config.Providers.AirQualityBaseURL, c.config.Providers.Timeout)
	c.checkers[ports.ServiceWeather] = infrastructure.NewUpstreamConfigHealthChecker(
		ports.ServiceWeather, c.config.Providers.WeatherBaseURL, c.config.Providers.Timeout)

	var cache ports.CacheProvider
	if c.config.Providers.CacheEnabled {
		cache, err = external.NewCacheProviderFactory().CreateCacheProvider(&c.config.Cache)
		if err != nil {
			return fmt.Errorf("create cache provider: %w", err)
		}
		if closer, ok := cache.(io.Closer); ok {
			c.closers = append(c.closers, closer)
		}

		params := external.CacheParams{
			Cache:   cache,
			TTL:     c.config.Providers.CacheTTL,
			Metrics: c.metrics,
			Logger:  appLogger,
		}
		if airQuality, err = external.NewCachedAirQualityProvider(airQuality, params); err != nil {
			return fmt.Errorf("create air quality cache: %w", err)
		}
		if weather, err = external.NewCachedWeatherProvider(weather, params); err != nil {
			return fmt.Errorf("create weather cache: %w", err)
		}

		slog.Info("Provider cache enabled",
			"type", c.config.Cache.Type.String(),
			"ttl", c.config.Providers.CacheTTL.String())
	}
	c.checkers["cache"] = infrastructure.NewCacheHealthChecker(cache, c.config.Cache.Type.String())

	c.ports = &ports.ApplicationPorts{
		AirQualityProvider: airQuality,
		WeatherProvider:    weather,
		CacheProvider:      cache,
		Metrics:            c.metrics,
		Logger:             appLogger,
	}

	slog.Info("Ports initialized successfully")
	return nil
}

// buildLogger writes through slog and, when LOG_FILE_PATH is set, also to a
// JSON-lines file
func (c *DependencyContainer) buildLogger() (ports.Logger, error) {
	stdout := infrastructure.NewSlogLoggerAdapter(slog.Default())
	if c.config.Logging.FilePath == "" {
		return stdout, nil
	}

	fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Logging.FilePath, logger.ParseLevel(c.config.Logging.Level))
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, fileLogger)

	slog.Info("File logging enabled", "path", c.config.Logging.FilePath)
	return infrastructure.TeeLogger{stdout, fileLogger}, nil
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

// MetricsHandler serves the Prometheus exposition of this container's registry
func (c *DependencyContainer) MetricsHandler() http.Handler {
	return c.metrics.Handler()
}

// HealthChecker aggregates the component checks registered while wiring
func (c *DependencyContainer) HealthChecker() ports.SystemHealthChecker {
	return infrastructure.NewSystemHealthChecker(c.checkers)
}

// Cleanup releases the cache connection and the log file
func (c *DependencyContainer) Cleanup() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}
