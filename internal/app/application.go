package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"healthadvisor.app/internal/adapters/api"
	"healthadvisor.app/internal/config"
	"healthadvisor.app/internal/core/health"
	"healthadvisor.app/internal/ports"
)

const sentryFlushTimeout = 2 * time.Second

type Application struct {
	config *config.Config

	// Use Cases
	healthUseCase *health.UseCase

	// Adapters
	httpAdapter *api.HTTPServerAdapter

	// Infrastructure
	deps          *DependencyContainer
	ports         *ports.ApplicationPorts
	sentryEnabled bool
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	return NewApplicationWithConfig(cfg)
}

// NewApplicationWithConfig wires the application from an already validated configuration
func NewApplicationWithConfig(cfg *config.Config) (*Application, error) {
	deps, err := NewDependencyContainer(cfg)
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	app := &Application{
		config: cfg,
		deps:   deps,
		ports:  deps.ApplicationPorts(),
	}

	if err := app.initializeErrorReporting(); err != nil {
		_ = deps.Cleanup()
		return nil, fmt.Errorf("initialize error reporting: %w", err)
	}

	if err := app.initializeUseCases(); err != nil {
		_ = deps.Cleanup()
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		_ = deps.Cleanup()
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeErrorReporting() error {
	if !a.config.Sentry.Enabled() {
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              a.config.Sentry.DSN,
		Environment:      a.config.Sentry.Environment,
		AttachStacktrace: true,
	}); err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}

	a.sentryEnabled = true
	slog.Info("Error reporting enabled", "environment", a.config.Sentry.Environment)
	return nil
}

func (a *Application) initializeUseCases() error {
	slog.Info("Initializing use cases...")

	var delay health.Delay
	if a.config.Engine.SimulatedLatency {
		delay = health.NewRandomDelay(a.config.Engine.SimulatedLatencyMin, a.config.Engine.SimulatedLatencyMax)
		slog.Info("Simulated engine latency enabled",
			"min", a.config.Engine.SimulatedLatencyMin.String(),
			"max", a.config.Engine.SimulatedLatencyMax.String())
	}

	healthUseCase, err := health.NewUseCase(health.UseCaseDependencies{
		AirQualityProvider: a.ports.AirQualityProvider,
		WeatherProvider:    a.ports.WeatherProvider,
		Metrics:            a.ports.Metrics,
		Logger:             a.ports.Logger,
		DefaultCountry:     a.config.Providers.DefaultCountry,
		Delay:              delay,
	})
	if err != nil {
		return fmt.Errorf("create health use case: %w", err)
	}
	a.healthUseCase = healthUseCase

	slog.Info("Use cases initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config: api.ServerConfig{
			Port:               a.config.Server.Port,
			CORSAllowedOrigins: a.config.Server.CORSAllowedOrigins,
			SentryEnabled:      a.sentryEnabled,
		},
		HealthUseCase:  a.healthUseCase,
		Metrics:        a.ports.Metrics,
		MetricsHandler: a.deps.MetricsHandler(),
		HealthChecker:  a.deps.HealthChecker(),
		Logger:         a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}
	a.httpAdapter = httpAdapter

	slog.Info("Adapters initialized successfully")
	return nil
}

// Start serves HTTP until Shutdown is called
func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting application...")

	if err := a.httpAdapter.Start(ctx); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown drains the HTTP server, then releases the cache connection, the
// log file and pending error reports
func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	if err := a.httpAdapter.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}

	if err := a.deps.Cleanup(); err != nil {
		slog.Warn("Error releasing resources", "error", err)
	}

	if a.sentryEnabled {
		sentry.Flush(sentryFlushTimeout)
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.httpAdapter.GetRouter()
}

// GetHealthUseCase returns the health use case for testing
func (a *Application) GetHealthUseCase() *health.UseCase {
	return a.healthUseCase
}
