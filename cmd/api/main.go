package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/fixkit/repairdesk/internal/api/http"
	"github.com/fixkit/repairdesk/internal/api/http/handlers"
	"github.com/fixkit/repairdesk/internal/config"
	"github.com/fixkit/repairdesk/internal/events"
	"github.com/fixkit/repairdesk/internal/observability"
	"github.com/fixkit/repairdesk/internal/service"
	"github.com/fixkit/repairdesk/internal/storage"
	"github.com/fixkit/repairdesk/internal/store"
	"github.com/fixkit/repairdesk/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	blob, err := storage.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to init storage backend", zap.Error(err))
	}
	defer blob.Close()

	dispatcher := events.NewInMemoryDispatcher()
	auditService := service.NewAuditService(dispatcher, logger)
	auditService.RegisterHandlers()

	shopStore := store.New(blob, dispatcher, logger)
	if err := shopStore.Hydrate(ctx); err != nil {
		logger.Fatal("failed to hydrate state", zap.Error(err))
	}

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, blob),
		Customers:   handlers.NewCustomersHandler(shopStore),
		Technicians: handlers.NewTechniciansHandler(shopStore),
		Devices:     handlers.NewDevicesHandler(shopStore),
		Tickets:     handlers.NewTicketsHandler(shopStore),
		Transfer:    handlers.NewTransferHandler(shopStore),
		Metrics:     handlers.NewMetricsHandler(metrics),
	})

	snapshotWorker := worker.NewSnapshotWorker(shopStore, logger, cfg.Snapshot)
	go snapshotWorker.Run(ctx)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
