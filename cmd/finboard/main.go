package main

import (
	"context"
	"os"

	"finboard/internal/backend"
	"finboard/internal/cli"
	apphttp "finboard/internal/http"
	"finboard/internal/log"
	"finboard/internal/palette"
	"finboard/internal/tracker"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Stdout, os.Getenv("LOG_LEVEL"), log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, cancel := cli.GracefulShutdown(context.Background(), logger)
	defer cancel()

	backendConfig, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendConfig)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if err := result.Close(); err != nil {
			logger.Error("Failed to close backend", log.FieldError, err)
		}
	}()

	colors, err := palette.New(cfg.ColorPolicy, palette.Default)
	if err != nil {
		logger.Error("Invalid color policy", log.FieldError, err)
		os.Exit(1)
	}
	session := tracker.New(
		tracker.WithPersister(result.Store),
		tracker.WithWeekStart(cfg.Weekday()),
		tracker.WithAllocator(colors),
		tracker.WithLogger(logger),
	)
	if err := session.Refresh(ctx, result.Store); err != nil {
		logger.Error("Failed to load ledgers", log.FieldError, err)
		os.Exit(1)
	}

	owner := tracker.NewOwner(session)
	srv := apphttp.NewServer(":"+cfg.Port, owner, logger, apphttp.WithRateLimit(cfg.RateLimitPerMinute))

	logger.Info("Starting finboard server",
		"port", cfg.Port,
		log.FieldBackend, cfg.DataBackend,
		"week_start", cfg.Weekday().String(),
		log.FieldOperation, log.OpStartup)
	if err := srv.Run(ctx, cfg.ShutdownTimeout); err != nil {
		logger.Error("Server error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
