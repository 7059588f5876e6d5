package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/matchday/socialgraph/internal/db"
	"github.com/matchday/socialgraph/internal/social"
	"github.com/matchday/socialgraph/pkg/config"
	"github.com/matchday/socialgraph/pkg/logging"
	"github.com/matchday/socialgraph/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting Socialgraph Reconciler")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	// Initialize database
	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	repo := db.NewRepository(database.DB)
	maintainer := social.NewCounterMaintainer(
		db.NewContentRepository(repo),
		db.NewFactRepository(repo),
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cancel the sweep on interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("Shutting down reconciler...")
		cancel()
	}()

	if cfg.Reconciler.RunOnce {
		runSweep(ctx, maintainer, cfg.Reconciler.BatchSize, logger)
		logger.Info("Reconciler exited")
		return
	}

	interval := time.Duration(cfg.Reconciler.IntervalSeconds) * time.Second
	logger.Info("Reconciler running", zap.Duration("interval", interval), zap.Int("batch_size", cfg.Reconciler.BatchSize))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// First sweep immediately, then on the ticker
	runSweep(ctx, maintainer, cfg.Reconciler.BatchSize, logger)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Reconciler exited")
			return
		case <-ticker.C:
			runSweep(ctx, maintainer, cfg.Reconciler.BatchSize, logger)
		}
	}
}

func runSweep(ctx context.Context, maintainer *social.CounterMaintainer, batchSize int, logger *zap.Logger) {
	start := time.Now()
	total, err := maintainer.ReconcileAll(ctx, batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.Error("Reconcile sweep failed", zap.Int("reconciled", total), zap.Error(err))
		return
	}
	logger.Info("Reconcile sweep complete",
		zap.Int("reconciled", total),
		zap.Duration("elapsed", time.Since(start)))
}
