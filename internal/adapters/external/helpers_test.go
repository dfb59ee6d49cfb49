package external

import (
	"context"
	"sync"
	"time"

	"healthadvisor.app/internal/ports"
)

type logEntry struct {
	level   string
	message string
	fields  map[string]interface{}
}

type testLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *testLogger) Debug(msg string, fields ...ports.Field) {
	l.addEntry("DEBUG", msg, fields...)
}

func (l *testLogger) Info(msg string, fields ...ports.Field) {
	l.addEntry("INFO", msg, fields...)
}

func (l *testLogger) Warn(msg string, fields ...ports.Field) {
	l.addEntry("WARN", msg, fields...)
}

func (l *testLogger) Error(msg string, fields ...ports.Field) {
	l.addEntry("ERROR", msg, fields...)
}

func (l *testLogger) addEntry(level, message string, fields ...ports.Field) {
	fieldMap := make(map[string]interface{})
	for _, field := range fields {
		fieldMap[field.Key] = field.Value
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{
		level:   level,
		message: message,
		fields:  fieldMap,
	})
}

func (l *testLogger) byLevel(level string) []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []logEntry
	for _, e := range l.entries {
		if e.level == level {
			out = append(out, e)
		}
	}
	return out
}

type upstreamCall struct {
	service  string
	success  bool
	duration time.Duration
}

type cacheLookup struct {
	service string
	hit     bool
}

type fakeMetrics struct {
	mu            sync.Mutex
	upstreamCalls []upstreamCall
	cacheLookups  []cacheLookup
}

func (m *fakeMetrics) RecordUpstreamCall(service string, success bool, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upstreamCalls = append(m.upstreamCalls, upstreamCall{service: service, success: success, duration: duration})
}

func (m *fakeMetrics) RecordRecommendation(alertLevel string) {}

func (m *fakeMetrics) RecordRecommendationLatency(duration time.Duration) {}

func (m *fakeMetrics) RecordCacheLookup(service string, hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheLookups = append(m.cacheLookups, cacheLookup{service: service, hit: hit})
}

func (m *fakeMetrics) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {}

type stubAirQualityProvider struct {
	calls    int
	response []ports.AirQualityData
	err      error
	delay    time.Duration
}

func (p *stubAirQualityProvider) GetAirQuality(ctx context.Context, city, country string) ([]ports.AirQualityData, error) {
	p.calls++
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.response, nil
}

func (p *stubAirQualityProvider) GetProviderName() string {
	return ports.ServiceAirQuality
}

type stubWeatherProvider struct {
	calls    int
	response *ports.WeatherData
	err      error
}

func (p *stubWeatherProvider) GetCurrentWeather(ctx context.Context, city, country string) (*ports.WeatherData, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.response, nil
}

func (p *stubWeatherProvider) GetProviderName() string {
	return ports.ServiceWeather
}

// failingCache returns an error from every operation
type failingCache struct {
	err error
}

func (c *failingCache) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, c.err
}

func (c *failingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.err
}

func (c *failingCache) Delete(ctx context.Context, key string) error {
	return c.err
}

func (c *failingCache) GetStats() ports.CacheStats {
	return ports.CacheStats{}
}

func (c *failingCache) Ping(ctx context.Context) error {
	return c.err
}

func ptr[T any](v T) *T {
	return &v
}
