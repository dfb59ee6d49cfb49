package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Provider gateway
	AirQualityProvider AirQualityProvider
	WeatherProvider    WeatherProvider

	// Cache, nil when the provider cache is disabled
	CacheProvider CacheProvider

	// Infrastructure
	Metrics MetricsSink
	Logger  Logger
}
