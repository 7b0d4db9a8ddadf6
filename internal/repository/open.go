package repository

import (
	"errors"

	"github.com/sfsergim/CivicReport/internal/config"
	"github.com/sfsergim/CivicReport/internal/logging"
)

// Storage backends accepted by STORAGE_BACKEND
const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// CollectionsFromConfig returns the collection names configured in cfg
func CollectionsFromConfig(cfg *config.Config) Collections {
	return Collections{
		Users:     cfg.UserCollection,
		OtpCodes:  cfg.OtpCodeCollection,
		Reports:   cfg.ReportCollection,
		AuditLogs: cfg.AuditLogCollection,
	}
}

// FromConfig returns the repository selected by cfg.StorageBackend. The
// mongo backend needs config.InitMongoDB to have succeeded first.
func FromConfig(cfg *config.Config, logger *logging.SafeLogger) (Repository, error) {
	switch cfg.StorageBackend {
	case BackendMemory:
		return NewMemoryRepository(), nil
	case BackendMongo, "":
		if config.MongoDB == nil {
			return nil, errors.New("mongodb is not initialized")
		}
		return NewMongoRepository(config.MongoDB, CollectionsFromConfig(cfg), logger), nil
	}
	return nil, errors.New("unknown storage backend: " + cfg.StorageBackend)
}
