package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"healthadvisor.app/internal/app"
	"healthadvisor.app/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found or error loading it")
	}

	logger.Setup(os.Getenv("LOG_LEVEL"))

	application, err := app.NewApplication()
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	cfg := application.Config()
	slog.Info("Configuration loaded successfully",
		"port", cfg.Server.Port,
		"air_quality_url", cfg.Providers.AirQualityBaseURL,
		"weather_url", cfg.Providers.WeatherBaseURL,
		"provider_cache", cfg.Providers.CacheEnabled)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting Health Advisory Service...")
		errCh <- application.Start(ctx)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("Failed to start application", "error", err)
			os.Exit(1)
		}
		return
	case <-ctx.Done():
		slog.Info("Received shutdown signal...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		slog.Error("Error during graceful shutdown", "error", err)
		os.Exit(1)
	}
}
