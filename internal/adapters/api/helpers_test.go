package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"healthadvisor.app/internal/core/health"
	"healthadvisor.app/internal/ports"
)

type mockHealthUseCase struct {
	mock.Mock
}

func (m *mockHealthUseCase) GetRecommendation(ctx context.Context, request health.RecommendationRequest) (*health.HealthRecommendation, error) {
	args := m.Called(ctx, request)
	recommendation, _ := args.Get(0).(*health.HealthRecommendation)
	return recommendation, args.Error(1)
}

func (m *mockHealthUseCase) GetAlertStatus(ctx context.Context, request health.AlertStatusRequest) (*health.AlertStatus, error) {
	args := m.Called(ctx, request)
	status, _ := args.Get(0).(*health.AlertStatus)
	return status, args.Error(1)
}

type httpObservation struct {
	method string
	route  string
	status int
}

type fakeMetrics struct {
	mutex    sync.Mutex
	requests []httpObservation
}

func (f *fakeMetrics) RecordUpstreamCall(string, bool, time.Duration) {}

func (f *fakeMetrics) RecordRecommendation(string) {}

func (f *fakeMetrics) RecordRecommendationLatency(time.Duration) {}

func (f *fakeMetrics) RecordCacheLookup(string, bool) {}

func (f *fakeMetrics) RecordHTTPRequest(method, route string, statusCode int, _ time.Duration) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.requests = append(f.requests, httpObservation{method: method, route: route, status: statusCode})
}

func (f *fakeMetrics) observed() []httpObservation {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return append([]httpObservation(nil), f.requests...)
}

type logEntry struct {
	level   string
	message string
}

type testLogger struct {
	mutex   sync.Mutex
	entries []logEntry
}

func (l *testLogger) record(level, msg string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.entries = append(l.entries, logEntry{level: level, message: msg})
}

func (l *testLogger) Debug(msg string, _ ...ports.Field) {
	l.record("debug", msg)
}

func (l *testLogger) Info(msg string, _ ...ports.Field) {
	l.record("info", msg)
}

func (l *testLogger) Warn(msg string, _ ...ports.Field) {
	l.record("warn", msg)
}

func (l *testLogger) Error(msg string, _ ...ports.Field) {
	l.record("error", msg)
}

func (l *testLogger) levels(msg string) []string {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	var levels []string
	for _, entry := range l.entries {
		if entry.message == msg {
			levels = append(levels, entry.level)
		}
	}
	return levels
}

type staticHealthChecker map[string]ports.HealthStatus

func (s staticHealthChecker) CheckAll(context.Context) map[string]ports.HealthStatus {
	return s
}

type serverFixture struct {
	server  *HTTPServerAdapter
	useCase *mockHealthUseCase
	metrics *fakeMetrics
	logger  *testLogger
}

func newServerFixture(t *testing.T, mutate func(*ServerOptions)) *serverFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &serverFixture{
		useCase: &mockHealthUseCase{},
		metrics: &fakeMetrics{},
		logger:  &testLogger{},
	}
	metricsPage := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics\n"))
	})
	opts := ServerOptions{
		Config:         ServerConfig{Port: 8080, CORSAllowedOrigins: []string{"*"}},
		HealthUseCase:  f.useCase,
		Metrics:        f.metrics,
		MetricsHandler: metricsPage,
		Logger:         f.logger,
	}
	if mutate != nil {
		mutate(&opts)
	}

	server, err := NewHTTPServerAdapter(opts)
	require.NoError(t, err)
	f.server = server
	t.Cleanup(func() { f.useCase.AssertExpectations(t) })
	return f
}

func (f *serverFixture) get(target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	f.server.GetRouter().ServeHTTP(rec, req)
	return rec
}
