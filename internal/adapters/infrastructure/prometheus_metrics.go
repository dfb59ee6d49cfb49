package infrastructure

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var latencyBuckets = []float64{0.1, 0.3, 0.5, 0.7, 1, 2, 5}

// PrometheusMetrics implements ports.MetricsSink on a dedicated registry
type PrometheusMetrics struct {
	registry *prometheus.Registry

	recommendations       *prometheus.CounterVec
	apiCalls              *prometheus.CounterVec
	apiLatency            *prometheus.HistogramVec
	recommendationLatency prometheus.Histogram
	cacheRequests         *prometheus.CounterVec
	httpDuration          *prometheus.HistogramVec
}

// NewPrometheusMetrics registers all collectors, including Go runtime and
// process collectors, on a fresh registry
func NewPrometheusMetrics() *PrometheusMetrics {
	m := &PrometheusMetrics{
		registry: prometheus.NewRegistry(),
		recommendations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "health_recommendations_total",
				Help: "Total health recommendations generated",
			},
			[]string{"alert_level"},
		),
		apiCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "health_api_calls_total",
				Help: "Total calls to external services",
			},
			[]string{"service", "status"},
		),
		apiLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "health_api_latency_seconds",
				Help:    "Latency of calls to external services",
				Buckets: latencyBuckets,
			},
			[]string{"service"},
		),
		recommendationLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "health_recommendation_latency_seconds",
				Help:    "Latency of recommendation generation",
				Buckets: latencyBuckets,
			},
		),
		cacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "health_provider_cache_requests_total",
				Help: "Provider cache lookups by result",
			},
			[]string{"service", "result"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "health_http_request_duration_seconds",
				Help:    "Duration of HTTP requests served",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status_code"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.recommendations,
		m.apiCalls,
		m.apiLatency,
		m.recommendationLatency,
		m.cacheRequests,
		m.httpDuration,
	)

	return m
}

func (m *PrometheusMetrics) RecordUpstreamCall(service string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	m.apiCalls.WithLabelValues(service, status).Inc()
	m.apiLatency.WithLabelValues(service).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordRecommendation(alertLevel string) {
	m.recommendations.WithLabelValues(alertLevel).Inc()
}

func (m *PrometheusMetrics) RecordRecommendationLatency(duration time.Duration) {
	m.recommendationLatency.Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordCacheLookup(service string, hit bool) {
	result := "hit"
	if !hit {
		result = "miss"
	}
	m.cacheRequests.WithLabelValues(service, result).Inc()
}

func (m *PrometheusMetrics) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(statusCode)).Observe(duration.Seconds())
}

// Registry exposes the underlying registry for tests and extra collectors
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text exposition format
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
