package health

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"healthadvisor.app/internal/ports"
)

type MockAirQualityProvider struct {
	mock.Mock
}

func (m *MockAirQualityProvider) GetAirQuality(ctx context.Context, city, country string) ([]ports.AirQualityData, error) {
	args := m.Called(ctx, city, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.AirQualityData), args.Error(1)
}

func (m *MockAirQualityProvider) GetProviderName() string {
	return ports.ServiceAirQuality
}

type MockWeatherProvider struct {
	mock.Mock
}

func (m *MockWeatherProvider) GetCurrentWeather(ctx context.Context, city, country string) (*ports.WeatherData, error) {
	args := m.Called(ctx, city, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.WeatherData), args.Error(1)
}

func (m *MockWeatherProvider) GetProviderName() string {
	return ports.ServiceWeather
}

// recordingMetrics counts observations in memory
type recordingMetrics struct {
	mu                    sync.Mutex
	recommendations       map[string]int
	recommendationLatency int
	upstreamCalls         int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{recommendations: make(map[string]int)}
}

func (r *recordingMetrics) RecordUpstreamCall(service string, success bool, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upstreamCalls++
}

func (r *recordingMetrics) RecordRecommendation(alertLevel string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recommendations[alertLevel]++
}

func (r *recordingMetrics) RecordRecommendationLatency(duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recommendationLatency++
}

func (r *recordingMetrics) RecordCacheLookup(service string, hit bool) {}

func (r *recordingMetrics) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {}

func (r *recordingMetrics) totalRecommendations() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, n := range r.recommendations {
		total += n
	}
	return total
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, fields ...ports.Field) {}
func (nopLogger) Info(msg string, fields ...ports.Field)  {}
func (nopLogger) Warn(msg string, fields ...ports.Field)  {}
func (nopLogger) Error(msg string, fields ...ports.Field) {}

func ptr[T any](v T) *T {
	return &v
}
