package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	deliveryserver "github.com/Apurer/go-gin-delivery-api/go"
	"github.com/Apurer/go-gin-delivery-api/internal/app/bootstrap"
	orderworkflows "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/adapters/workflows"
	orderports "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-delivery-api/internal/platform/httpmetrics"
	"github.com/Apurer/go-gin-delivery-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-delivery-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-delivery-api/internal/platform/postgres"
)

const serviceName = "delivery-api"

// Run boots the delivery HTTP API with observability, repositories, and workflows wired.
// It returns when ctx is canceled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{ServiceName: serviceName})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	stores, cleanupStores, err := BuildStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanupStores()

	services := bootstrap.NewServices(stores, bootstrap.Settings{
		JWTSecret:  cfg.JWTSecret,
		JWTTTL:     cfg.JWTTTL,
		OwnerToken: cfg.OwnerToken,
		Location:   cfg.Location,
	}, instruments)
	if cfg.OwnerToken == "" {
		logger.Warn("OWNER_TOKEN not set, owner signup is disabled")
	}

	var placement orderports.WorkflowOrchestrator = orderworkflows.NewInlineOrderWorkflows(services.Orders)
	temporalClient, err := bootstrap.DialTemporal(bootstrap.TemporalSettings{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Disabled:  cfg.TemporalDisabled,
	}, instruments, "temporal-client")
	if err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		placement = orderworkflows.NewTemporalOrderWorkflows(temporalClient, services.Orders)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := deliveryserver.ApiHandleFunctions{
		UserAPI:   deliveryserver.NewUserAPI(services.Users),
		ShopAPI:   deliveryserver.NewShopAPI(services.Shops),
		OrderAPI:  deliveryserver.NewOrderAPI(services.Orders, placement),
		ReviewAPI: deliveryserver.NewReviewAPI(services.Reviews),
	}
	opts := deliveryserver.RouterOptions{
		Authenticator: services.Users,
		Middleware:    []gin.HandlerFunc{otelgin.Middleware(serviceName)},
	}
	if cfg.MetricsEnabled {
		collector := httpmetrics.NewCollector("delivery")
		opts.Middleware = append(opts.Middleware, collector.Middleware())
		opts.MetricsHandler = collector.Handler()
	}
	router := deliveryserver.NewRouter(handlers, opts)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Delivery API listening", slog.String("addr", server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("Delivery API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down Delivery API")
		return server.Shutdown(shutdownCtx)
	}
}

// BuildStores connects to PostgreSQL and migrates it, or falls back to in-memory stores
// when POSTGRES_DSN is unset or unreachable.
func BuildStores(ctx context.Context, cfg Config, logger *slog.Logger) (bootstrap.Stores, func(), error) {
	db, cleanup := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return bootstrap.MemoryStores(), cleanup, nil
	}
	if err := migrations.Run(db); err != nil {
		cleanup()
		return bootstrap.Stores{}, func() {}, fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info("repositories configured with postgres")
	return bootstrap.PostgresStores(db), cleanup, nil
}
