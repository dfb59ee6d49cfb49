package health

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"healthadvisor.app/internal/ports"
	"healthadvisor.app/pkg/errors"
	"healthadvisor.app/pkg/validation"
)

// DefaultCountry is used when neither the request nor the configuration names one
const DefaultCountry = "FR"

type UseCase struct {
	airQuality     ports.AirQualityProvider
	weather        ports.WeatherProvider
	engine         *Engine
	metrics        ports.MetricsSink
	logger         ports.Logger
	defaultCountry string
	delay          Delay
}

type UseCaseDependencies struct {
	AirQualityProvider ports.AirQualityProvider
	WeatherProvider    ports.WeatherProvider
	Metrics            ports.MetricsSink
	Logger             ports.Logger
	DefaultCountry     string
	// Delay is optional; nil means no artificial latency
	Delay Delay
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.AirQualityProvider == nil {
		return nil, errors.NewValidationError("air quality provider is required")
	}
	if deps.WeatherProvider == nil {
		return nil, errors.NewValidationError("weather provider is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	defaultCountry := deps.DefaultCountry
	if defaultCountry == "" {
		defaultCountry = DefaultCountry
	}
	if !validation.IsCountryCode(defaultCountry) {
		return nil, errors.NewValidationError("default country must be a two-letter code")
	}

	return &UseCase{
		airQuality:     deps.AirQualityProvider,
		weather:        deps.WeatherProvider,
		engine:         NewEngine(deps.Metrics),
		metrics:        deps.Metrics,
		logger:         deps.Logger,
		defaultCountry: strings.ToUpper(defaultCountry),
		delay:          deps.Delay,
	}, nil
}

// GetRecommendation fetches air quality and weather concurrently and derives
// the recommendation. Upstream failures are returned as upstream errors and
// the engine is not invoked.
func (uc *UseCase) GetRecommendation(ctx context.Context, request RecommendationRequest) (*HealthRecommendation, error) {
	start := time.Now()
	defer func() {
		uc.metrics.RecordRecommendationLatency(time.Since(start))
	}()

	city, country, err := uc.normalize(request.City, request.Country, request.IsValid)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Generating recommendations",
		ports.F("city", city),
		ports.F("country", country))

	samples, weather, err := uc.fetchReadings(ctx, city, country)
	if err != nil {
		uc.logFailure("Failed to fetch provider data", city, country, start, err)
		return nil, uc.classifyFailure(err)
	}

	if uc.delay != nil {
		if err := uc.delay(ctx); err != nil {
			uc.logFailure("Recommendation interrupted", city, country, start, err)
			return nil, errors.NewInternalError("recommendation interrupted", err)
		}
	}

	recommendation := uc.engine.Derive(samples, weather)

	uc.logger.Info("Recommendations generated successfully",
		ports.F("city", city),
		ports.F("country", country),
		ports.F("alert_level", recommendation.AlertLevel.String()),
		ports.F("aqi", recommendation.AQI),
		ports.F("duration_ms", time.Since(start).Milliseconds()))

	return &recommendation, nil
}

// GetAlertStatus fetches air quality only and classifies it. Every failure
// other than request validation is reported as an internal error.
func (uc *UseCase) GetAlertStatus(ctx context.Context, request AlertStatusRequest) (*AlertStatus, error) {
	start := time.Now()

	city, country, err := uc.normalize(request.City, request.Country, request.IsValid)
	if err != nil {
		return nil, err
	}

	data, err := uc.airQuality.GetAirQuality(ctx, city, country)
	if err != nil {
		uc.logFailure("Error getting alert status", city, country, start, err)
		return nil, errors.NewInternalError("get alert status", err)
	}

	aqi, _ := AggregateAQI(toSamples(data))
	level := Classify(aqi)

	uc.logger.Debug("Alert status computed",
		ports.F("city", city),
		ports.F("country", country),
		ports.F("alert_level", level.String()),
		ports.F("duration_ms", time.Since(start).Milliseconds()))

	return &AlertStatus{
		City:       city,
		Country:    country,
		AlertLevel: level,
		AQI:        RoundAQI(aqi),
	}, nil
}

func (uc *UseCase) normalize(city, country string, isValid func() error) (string, string, error) {
	if err := isValid(); err != nil {
		return "", "", errors.NewValidationError("invalid request: " + err.Error())
	}

	trimmedCity, _ := validation.TrimAndValidate(city)
	return trimmedCity, validation.CountryOrDefault(country, uc.defaultCountry), nil
}

func (uc *UseCase) fetchReadings(ctx context.Context, city, country string) ([]AirQualitySample, WeatherReading, error) {
	var (
		airQualityData []ports.AirQualityData
		weatherData    *ports.WeatherData
	)

	// Both calls run to completion so one provider's failure is never
	// reported against the other.
	var g errgroup.Group
	g.Go(func() error {
		data, err := uc.airQuality.GetAirQuality(ctx, city, country)
		if err != nil {
			return fmt.Errorf("fetch air quality: %w", err)
		}
		airQualityData = data
		return nil
	})
	g.Go(func() error {
		data, err := uc.weather.GetCurrentWeather(ctx, city, country)
		if err != nil {
			return fmt.Errorf("fetch weather: %w", err)
		}
		weatherData = data
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, WeatherReading{}, err
	}

	return toSamples(airQualityData), toReading(weatherData), nil
}

// classifyFailure keeps upstream and validation errors and folds anything
// else into an internal error.
func (uc *UseCase) classifyFailure(err error) error {
	if errors.IsUpstreamError(err) || errors.IsValidationError(err) || errors.IsInternalError(err) {
		return err
	}
	return errors.NewInternalError("unexpected failure", err)
}

func (uc *UseCase) logFailure(msg, city, country string, start time.Time, err error) {
	fields := []ports.Field{
		ports.F("city", city),
		ports.F("country", country),
		ports.F("duration_ms", time.Since(start).Milliseconds()),
		ports.F("error", err.Error()),
	}
	if appErr, ok := errors.As(err); ok && appErr.Service != "" {
		fields = append(fields, ports.F("service", appErr.Service))
	}
	uc.logger.Error(msg, fields...)
}

func toSamples(data []ports.AirQualityData) []AirQualitySample {
	samples := make([]AirQualitySample, 0, len(data))
	for _, d := range data {
		samples = append(samples, AirQualitySample{
			AQI:          d.AQI,
			QualityLevel: d.QualityLevel,
		})
	}
	return samples
}

func toReading(data *ports.WeatherData) WeatherReading {
	if data == nil {
		return WeatherReading{}
	}
	return WeatherReading{
		Temperature: data.Temperature,
		Humidity:    data.Humidity,
		Timestamp:   data.Timestamp,
	}
}
