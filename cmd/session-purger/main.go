package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Apurer/go-gin-delivery-api/internal/app/api"
	userpostgres "github.com/Apurer/go-gin-delivery-api/internal/domains/users/adapters/persistence/postgres"
	platformobservability "github.com/Apurer/go-gin-delivery-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-delivery-api/internal/platform/postgres"
)

// The purger runs once, or every SESSION_PURGE_INTERVAL_MINUTES until interrupted.
func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load .env: %v", err)
	}
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{
		ServiceName:   "delivery-session-purger",
		TraceExporter: platformobservability.ExporterNone,
	})
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(shutdownCtx)
	}()
	logger := instruments.Logger
	db, cleanup := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge sessions")
	}
	store := userpostgres.NewSessionStore(db)

	purge := func() {
		purgeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		removed, err := store.PurgeExpired(purgeCtx)
		if err != nil {
			logger.Error("failed to purge sessions", slog.String("error", err.Error()))
			return
		}
		logger.Info("session purge completed", slog.Int64("removed", removed))
	}

	purge()
	if cfg.SessionPurgeIntervalMinute <= 0 {
		return
	}
	ticker := time.NewTicker(time.Duration(cfg.SessionPurgeIntervalMinute) * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purge()
		}
	}
}
