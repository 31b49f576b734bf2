package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"sportkalender-service/internal/config"
	"sportkalender-service/internal/logging"
	"sportkalender-service/internal/server"
)

const (
	serviceName = "sportkalender-service"
	appVersion  = "dev"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	envErr := config.LoadEnvFile()
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: serviceName,
		Version: appVersion,
	})
	if envErr != nil {
		logger.Warn("env file not loaded", slog.String(logging.FieldError, envErr.Error()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
}
