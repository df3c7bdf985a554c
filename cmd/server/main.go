package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/convertidor/internal/config"
	"github.com/JonMunkholm/convertidor/internal/core"
	"github.com/JonMunkholm/convertidor/internal/logging"
	"github.com/JonMunkholm/convertidor/internal/web"
)

func main() {
	if config.LoadDotEnv() {
		slog.Info("loaded .env file")
	} else {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"output_encoding", cfg.Output.Encoding,
		"max_body_size", cfg.Server.MaxBodySize,
		"max_concurrent", cfg.Limits.MaxConcurrent,
		"require_api_key", cfg.Security.RequireAPIKey,
	)

	service, err := core.NewService(cfg)
	if err != nil {
		slog.Error("failed to create service", "error", err)
		os.Exit(1)
	}

	// Descriptors are read once; requests override them per call.
	descriptors, err := service.LoadDescriptors()
	if err != nil {
		slog.Error("failed to load descriptors", "error", core.FormatUserError(err))
		os.Exit(1)
	}

	slog.Info("strategies registered",
		"count", core.StrategyCount(),
		"active", descriptors.Format.Tipo,
		"headers", len(descriptors.Headers),
	)

	server := web.NewServer(service, cfg, descriptors)

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}

		// Handlers cut off by the request timeout may still hold a slot.
		if status := service.Status(); status.Active > 0 {
			slog.Info("waiting for conversions to complete", "active", status.Active)
			if err := service.Drain(shutdownCtx); err != nil {
				slog.Warn("conversions did not complete in time", "error", err)
			}
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	<-shutdownDone
	slog.Info("server stopped")
}
