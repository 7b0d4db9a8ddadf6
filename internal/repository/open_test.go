package repository

import (
	"testing"

	"github.com/sfsergim/CivicReport/internal/config"
	"github.com/sfsergim/CivicReport/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfig(t *testing.T) {
	repo, err := FromConfig(&config.Config{StorageBackend: BackendMemory}, logging.Logger)
	require.NoError(t, err)
	assert.IsType(t, &MemoryRepository{}, repo)

	previous := config.MongoDB
	config.MongoDB = nil
	t.Cleanup(func() { config.MongoDB = previous })

	_, err = FromConfig(&config.Config{StorageBackend: BackendMongo}, logging.Logger)
	assert.Error(t, err)

	_, err = FromConfig(&config.Config{StorageBackend: "postgres"}, logging.Logger)
	assert.Error(t, err)
}

func TestCollectionsFromConfig(t *testing.T) {
	cfg := &config.Config{
		UserCollection:     "u",
		OtpCodeCollection:  "o",
		ReportCollection:   "r",
		AuditLogCollection: "a",
	}
	assert.Equal(t, Collections{Users: "u", OtpCodes: "o", Reports: "r", AuditLogs: "a"}, CollectionsFromConfig(cfg))
}
