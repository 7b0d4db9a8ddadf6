package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/sfsergim/CivicReport/internal/config"
	"github.com/sfsergim/CivicReport/internal/logging"
	"github.com/sfsergim/CivicReport/internal/observability"
	"github.com/sfsergim/CivicReport/internal/repository"
	"github.com/sfsergim/CivicReport/internal/services"
	"go.uber.org/zap"
)

func main() {
	// Initialize logging
	if err := logging.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logging.Logger.Sync()

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}
	cfg := config.AppConfig

	if cfg.StorageBackend != repository.BackendMongo {
		logging.Logger.Fatal("the moderation worker needs the mongo storage backend; the memory backend moderates inside the API process",
			zap.String("storage", cfg.StorageBackend))
	}

	observability.InitTracer("civicreport-worker")
	defer observability.ShutdownTracer()

	logging.Logger.Info("starting CivicReport moderation worker")

	// Initialize MongoDB
	if err := config.InitMongoDB(); err != nil {
		logging.Logger.Fatal("failed to initialize MongoDB", zap.Error(err))
	}
	defer config.DisconnectMongoDB()

	repo, err := repository.FromConfig(cfg, logging.Logger)
	if err != nil {
		logging.Logger.Fatal("failed to open repository", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker := services.NewModerationWorker(repo, services.ModerationConfig{
		Interval:  cfg.ModerationInterval,
		BatchSize: cfg.ModerationBatchSize,
	}, logging.Logger)

	// Run returns once a shutdown signal cancels ctx
	worker.Run(ctx)

	logging.Logger.Info("CivicReport moderation worker stopped")
}
