// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"healthadvisor.app/internal/core/health"
	"healthadvisor.app/internal/ports"
	"healthadvisor.app/pkg/errors"
)

const (
	serviceName       = "health-service"
	readHeaderTimeout = 10 * time.Second
)

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port               int
	CORSAllowedOrigins []string
	SentryEnabled      bool
}

// HealthUseCase is the application service the HTTP adapter drives
type HealthUseCase interface {
	GetRecommendation(ctx context.Context, request health.RecommendationRequest) (*health.HealthRecommendation, error)
	GetAlertStatus(ctx context.Context, request health.AlertStatusRequest) (*health.AlertStatus, error)
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router        *gin.Engine
	server        *http.Server
	config        ServerConfig
	healthUseCase HealthUseCase
	metrics       ports.MetricsSink
	metricsPage   http.Handler
	healthChecker ports.SystemHealthChecker
	logger        ports.Logger
}

// ServerOptions represents options for creating the HTTP server.
// MetricsHandler serves GET /metrics. HealthChecker is optional; without it
// /health/components reports no components.
type ServerOptions struct {
	Config         ServerConfig
	HealthUseCase  HealthUseCase
	Metrics        ports.MetricsSink
	MetricsHandler http.Handler
	HealthChecker  ports.SystemHealthChecker
	Logger         ports.Logger
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	s := &HTTPServerAdapter{
		router:        gin.New(),
		config:        opts.Config,
		healthUseCase: opts.HealthUseCase,
		metrics:       opts.Metrics,
		metricsPage:   opts.MetricsHandler,
		healthChecker: opts.HealthChecker,
		logger:        opts.Logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return s, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.HealthUseCase == nil {
		return errors.NewValidationError("health use case is required")
	}
	if opts.Metrics == nil {
		return errors.NewValidationError("metrics is required")
	}
	if opts.MetricsHandler == nil {
		return errors.NewValidationError("metrics handler is required")
	}
	if opts.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	return nil
}

func (s *HTTPServerAdapter) setupMiddleware() {
	s.router.Use(gin.Recovery())
	if s.config.SentryEnabled {
		s.router.Use(sentrygin.New(sentrygin.Options{
			Repanic:         true,
			WaitForDelivery: false,
			Timeout:         5 * time.Second,
		}))
	}
	s.router.Use(requestIDMiddleware())
	s.router.Use(cors.New(corsConfig(s.config.CORSAllowedOrigins)))
	s.router.Use(s.observeMiddleware())
}

// setupRoutes registers every route at the root and under /api/health
func (s *HTTPServerAdapter) setupRoutes() {
	for _, group := range []*gin.RouterGroup{&s.router.RouterGroup, s.router.Group("/api/health")} {
		group.GET("/recommendations", s.getRecommendations)
		group.GET("/alert-status", s.getAlertStatus)
		group.GET("/metrics", gin.WrapH(s.metricsPage))
		group.GET("/health", s.getHealth)
		group.GET("/health/components", s.getComponentHealth)
	}
}

// Start serves HTTP until Shutdown is called
func (s *HTTPServerAdapter) Start(ctx context.Context) error {
	slog.Info("Starting HTTP server", "port", s.config.Port)

	if err := s.server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *HTTPServerAdapter) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders:    []string{"Content-Length", requestIDHeader},
		MaxAge:           12 * time.Hour,
		AllowCredentials: true,
	}

	// Credentialed responses cannot carry "*", so a wildcard echoes the
	// caller's origin instead.
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowOriginFunc = func(string) bool { return true }
			return cfg
		}
	}

	cfg.AllowOrigins = origins
	return cfg
}
