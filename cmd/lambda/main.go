package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/reviewpulse/internal/adapter/comprehend"
	"github.com/pscheid92/reviewpulse/internal/adapter/eventpublisher"
	"github.com/pscheid92/reviewpulse/internal/adapter/lambda"
	"github.com/pscheid92/reviewpulse/internal/app"
	"github.com/pscheid92/reviewpulse/internal/platform/config"
	"github.com/pscheid92/reviewpulse/internal/platform/logging"
	"github.com/pscheid92/reviewpulse/internal/platform/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Function cold start", "service", version.Service, "version", version.Version, "env", cfg.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	cancel()
	if err != nil {
		slog.Error("Failed to load AWS configuration", "error", err)
		os.Exit(1)
	}

	// Created once per execution environment, reused across invocations.
	reviews := app.NewService(
		comprehend.NewFromConfig(awsCfg),
		eventpublisher.NewFromConfig(awsCfg, cfg.TopicTargetARN),
		nil,
		clockwork.NewRealClock(),
	)

	awslambda.Start(lambda.NewHandler(reviews).Handle)
}
