// cmd/signup-server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"club-signup/internal/common/config"
	"club-signup/internal/common/logger"
	"club-signup/internal/common/observability"
	"club-signup/internal/docstore"
	"club-signup/internal/web"
)

const (
	storeConnectAttempts = 10
	storeConnectDelay    = 2 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog, _ := zap.NewProduction()
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		bootLog, _ := zap.NewProduction()
		bootLog.Fatal("logger init failed", zap.Error(err))
	}
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting signup server...",
		zap.String("projectId", cfg.Project.ProjectID),
		zap.String("environment", cfg.App.Environment),
		zap.String("storeDriver", cfg.Store.Driver),
	)
	if cfg.EnvFile != "" {
		zapLog.Info("Loaded .env", zap.String("path", cfg.EnvFile))
	}

	obs, err := observability.New("signup-server", nil)
	if err != nil {
		zapLog.Warn("otel metrics disabled", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Connect document store with retry ---
	var store docstore.Store
	err = retryWithBackoff(ctx, func() error {
		var err error
		store, err = docstore.Open(ctx, cfg, log)
		return err
	}, storeConnectAttempts, storeConnectDelay, zapLog, "document store connection")
	if err != nil {
		zapLog.Fatal("document store unavailable", zap.Error(err))
	}
	defer store.Close()

	handler, err := web.NewHandler(store, web.ConfigFrom(cfg), log, obs)
	if err != nil {
		zapLog.Fatal("handler init failed", zap.Error(err))
	}

	srv := web.NewServer(cfg.Server.Address, handler.Router(), config.GetDuration(cfg.Server.ReadHeaderTimeout))

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("server error", zap.Error(err))
			stop()
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	zapLog.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Warn("otel shutdown failed", zap.Error(err))
	}

	zapLog.Info("Signup server stopped")
}
