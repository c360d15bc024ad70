package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-delivery-api/internal/app/api"
	"github.com/Apurer/go-gin-delivery-api/internal/app/bootstrap"
	platformobservability "github.com/Apurer/go-gin-delivery-api/internal/platform/observability"
	orderactivities "github.com/Apurer/go-gin-delivery-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-gin-delivery-api/internal/platform/temporal/workflows/orders"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load .env: %v", err)
	}
	ctx := context.Background()
	const serviceName = "delivery-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{ServiceName: serviceName})
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	stores, cleanupStores, err := api.BuildStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build stores", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanupStores()
	services := bootstrap.NewServices(stores, bootstrap.Settings{Location: cfg.Location}, instruments)
	activities := orderactivities.NewActivities(services.Orders)

	temporalClient, err := bootstrap.DialTemporal(bootstrap.TemporalSettings{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
	}, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(activities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
