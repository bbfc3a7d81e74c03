package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/reviewpulse/internal/adapter/comprehend"
	"github.com/pscheid92/reviewpulse/internal/adapter/eventpublisher"
	"github.com/pscheid92/reviewpulse/internal/adapter/httpserver"
	"github.com/pscheid92/reviewpulse/internal/adapter/metrics"
	"github.com/pscheid92/reviewpulse/internal/app"
	"github.com/pscheid92/reviewpulse/internal/platform/config"
	"github.com/pscheid92/reviewpulse/internal/platform/logging"
	"github.com/pscheid92/reviewpulse/internal/platform/version"
)

func runGracefulShutdown(srv *httpserver.Server, timeout time.Duration) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, draining requests...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupAWS(cfg *config.Config) aws.Config {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		slog.Error("Failed to load AWS configuration", "error", err)
		os.Exit(1)
	}
	return awsCfg
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "service", version.Service, "version", version.Version, "env", cfg.AppEnv, "port", cfg.Port)

	awsCfg := setupAWS(cfg)

	// Clients are created once and shared by every request.
	classifier := comprehend.NewFromConfig(awsCfg)
	publisher := eventpublisher.NewFromConfig(awsCfg, cfg.TopicTargetARN)

	registry := metrics.NewRegistry()
	reviewMetrics := metrics.NewReviewMetrics(registry)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	reviews := app.NewService(classifier, publisher, reviewMetrics, clock)

	srv := httpserver.NewServer(cfg, reviews, clock,
		httpserver.WithMetrics(httpMetrics, metrics.Handler(registry)),
		httpserver.WithHealthChecks(httpserver.HealthCheck{Name: "sns_topic", Check: publisher.Ping}),
	)

	done := runGracefulShutdown(srv, cfg.ShutdownTimeout)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
