package external

import (
	"context"
	"time"

	"healthadvisor.app/internal/ports"
)

// InstrumentedAirQualityProvider records one upstream observation per call and
// logs its start and outcome
type InstrumentedAirQualityProvider struct {
	provider ports.AirQualityProvider
	metrics  ports.MetricsSink
	logger   ports.Logger
}

func NewInstrumentedAirQualityProvider(provider ports.AirQualityProvider, metrics ports.MetricsSink, logger ports.Logger) ports.AirQualityProvider {
	return &InstrumentedAirQualityProvider{
		provider: provider,
		metrics:  metrics,
		logger:   logger,
	}
}

func (d *InstrumentedAirQualityProvider) GetAirQuality(ctx context.Context, city, country string) ([]ports.AirQualityData, error) {
	service := d.provider.GetProviderName()
	logRequestStarted(d.logger, service, city, country)

	startTime := time.Now()
	data, err := d.provider.GetAirQuality(ctx, city, country)
	duration := time.Since(startTime)

	d.metrics.RecordUpstreamCall(service, err == nil, duration)

	if err != nil {
		logRequestFailed(d.logger, service, city, country, duration, err)
		return nil, err
	}

	d.logger.Info("Upstream request completed",
		ports.F("provider", service),
		ports.F("city", city),
		ports.F("country", country),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("samples", len(data)))

	return data, nil
}

func (d *InstrumentedAirQualityProvider) GetProviderName() string {
	return d.provider.GetProviderName()
}

// InstrumentedWeatherProvider is the weather counterpart of InstrumentedAirQualityProvider
type InstrumentedWeatherProvider struct {
	provider ports.WeatherProvider
	metrics  ports.MetricsSink
	logger   ports.Logger
}

func NewInstrumentedWeatherProvider(provider ports.WeatherProvider, metrics ports.MetricsSink, logger ports.Logger) ports.WeatherProvider {
	return &InstrumentedWeatherProvider{
		provider: provider,
		metrics:  metrics,
		logger:   logger,
	}
}

func (d *InstrumentedWeatherProvider) GetCurrentWeather(ctx context.Context, city, country string) (*ports.WeatherData, error) {
	service := d.provider.GetProviderName()
	logRequestStarted(d.logger, service, city, country)

	startTime := time.Now()
	data, err := d.provider.GetCurrentWeather(ctx, city, country)
	duration := time.Since(startTime)

	d.metrics.RecordUpstreamCall(service, err == nil, duration)

	if err != nil {
		logRequestFailed(d.logger, service, city, country, duration, err)
		return nil, err
	}

	fields := []ports.Field{
		ports.F("provider", service),
		ports.F("city", city),
		ports.F("country", country),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
	}
	if data != nil {
		if data.Temperature != nil {
			fields = append(fields, ports.F("temperature", *data.Temperature))
		}
		if data.Humidity != nil {
			fields = append(fields, ports.F("humidity", *data.Humidity))
		}
	}
	d.logger.Info("Upstream request completed", fields...)

	return data, nil
}

func (d *InstrumentedWeatherProvider) GetProviderName() string {
	return d.provider.GetProviderName()
}

func logRequestStarted(logger ports.Logger, service, city, country string) {
	logger.Info("Upstream request started",
		ports.F("provider", service),
		ports.F("city", city),
		ports.F("country", country),
		ports.F("event", "request"))
}

func logRequestFailed(logger ports.Logger, service, city, country string, duration time.Duration, err error) {
	logger.Error("Upstream request failed",
		ports.F("provider", service),
		ports.F("city", city),
		ports.F("country", country),
		ports.F("event", "error"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("error", err.Error()))
}
