package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bundleguard/bundleguard/internal/api/handlers"
	"github.com/bundleguard/bundleguard/internal/api/router"
	"github.com/bundleguard/bundleguard/internal/config"
	"github.com/bundleguard/bundleguard/internal/db"
	"github.com/bundleguard/bundleguard/internal/domain/alert"
	"github.com/bundleguard/bundleguard/internal/domain/device"
	"github.com/bundleguard/bundleguard/internal/domain/usage"
	"github.com/bundleguard/bundleguard/internal/pkg/logger"
	"github.com/bundleguard/bundleguard/internal/pkg/validator"
	"github.com/bundleguard/bundleguard/internal/repository/postgres"
	"github.com/bundleguard/bundleguard/internal/repository/sqlite"
	"github.com/bundleguard/bundleguard/internal/services"
	"github.com/bundleguard/bundleguard/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	database, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(database, cfg.Database.Driver); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	var (
		alertRepo  alert.Repository
		usageRepo  usage.Repository
		deviceRepo device.Repository
	)
	switch cfg.Database.Driver {
	case "postgres":
		alertRepo = postgres.NewAlertRepository(database)
		usageRepo = postgres.NewUsageRepository(database)
		deviceRepo = postgres.NewDeviceRepository(database)
	default:
		alertRepo = sqlite.NewAlertRepository(database)
		usageRepo = sqlite.NewUsageRepository(database)
		deviceRepo = sqlite.NewDeviceRepository(database)
	}

	// Services
	alertService := services.NewAlertService(alertRepo, log)
	usageService := services.NewUsageService(usageRepo, log)
	deviceService := services.NewDeviceService(deviceRepo, log)
	analysisService := services.NewAnalysisService(usageRepo, cfg.Detection.Sensitivity, log)
	notifyService := services.NewNotificationService(services.NewLogNotifier(log), log)

	val := validator.New()

	h := &router.Handlers{
		Health: handlers.NewHealthHandler(database, log),
		Alert:  handlers.NewAlertHandler(alertService, analysisService, deviceService, log, val),
		Usage:  handlers.NewUsageHandler(usageService, log, val),
		Device: handlers.NewDeviceHandler(deviceService, log, val),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scanner := worker.NewSpikeScanner(
		deviceService,
		analysisService,
		alertService,
		alertRepo,
		notifyService,
		cfg.Detection.ScanSchedule,
		cfg.Detection.SuppressionWindowHours,
		log,
	)
	go func() {
		if err := scanner.Start(ctx); err != nil {
			log.ErrorWithErr(err, "Spike scanner failed to start")
		}
	}()

	go func() {
		log.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorWithErr(err, "Graceful shutdown failed")
	}
}
