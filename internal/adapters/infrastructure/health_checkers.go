package infrastructure

import (
	"context"
	"net/url"
	"time"

	"healthadvisor.app/internal/ports"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDisabled  = "disabled"

	cachePingTimeout = 2 * time.Second
)

// UpstreamConfigHealthChecker reports whether an upstream base URL is usable.
// It never calls the upstream.
type UpstreamConfigHealthChecker struct {
	component string
	baseURL   string
	timeout   time.Duration
}

func NewUpstreamConfigHealthChecker(component, baseURL string, timeout time.Duration) *UpstreamConfigHealthChecker {
	return &UpstreamConfigHealthChecker{
		component: component,
		baseURL:   baseURL,
		timeout:   timeout,
	}
}

func (c *UpstreamConfigHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: c.component,
		Status:    statusHealthy,
		Details: map[string]interface{}{
			"base_url": c.baseURL,
			"timeout":  c.timeout.String(),
		},
	}

	parsed, err := url.Parse(c.baseURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		status.Status = statusUnhealthy
		status.Error = "base URL is not an absolute http(s) URL"
	}

	return status
}

// CacheHealthChecker pings the provider cache backend
type CacheHealthChecker struct {
	cache     ports.CacheProvider
	cacheType string
}

// NewCacheHealthChecker accepts a nil cache, which reports as disabled
func NewCacheHealthChecker(cache ports.CacheProvider, cacheType string) *CacheHealthChecker {
	return &CacheHealthChecker{cache: cache, cacheType: cacheType}
}

func (c *CacheHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	if c.cache == nil {
		return ports.HealthStatus{Component: "cache", Status: statusDisabled}
	}

	ctx, cancel := context.WithTimeout(ctx, cachePingTimeout)
	defer cancel()

	stats := c.cache.GetStats()
	status := ports.HealthStatus{
		Component: "cache",
		Status:    statusHealthy,
		Details: map[string]interface{}{
			"type":      c.cacheType,
			"hits":      stats.Hits,
			"misses":    stats.Misses,
			"hit_ratio": stats.HitRatio,
		},
	}

	if err := c.cache.Ping(ctx); err != nil {
		status.Status = statusUnhealthy
		status.Error = err.Error()
	}

	return status
}

// SystemHealthChecker aggregates component checks by name
type SystemHealthChecker struct {
	checkers map[string]ports.HealthChecker
}

func NewSystemHealthChecker(checkers map[string]ports.HealthChecker) *SystemHealthChecker {
	filtered := make(map[string]ports.HealthChecker, len(checkers))
	for name, checker := range checkers {
		if checker != nil {
			filtered[name] = checker
		}
	}
	return &SystemHealthChecker{checkers: filtered}
}

// CheckAll performs health checks on all components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus, len(s.checkers))
	for name, checker := range s.checkers {
		results[name] = checker.Check(ctx)
	}
	return results
}
