package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sfsergim/CivicReport/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) Repository {
		return NewMemoryRepository()
	})
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	report := &models.Report{ID: "r1", UserID: "u1", Status: models.StatusPendingModeration, CreatedAt: now}
	require.NoError(t, repo.CreateReport(ctx, report, nil))

	report.Status = models.StatusApproved
	got, err := repo.GetReport(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingModeration, got.Status)

	got.Status = models.StatusRejected
	again, err := repo.GetReport(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingModeration, again.Status)
}

func TestMemoryRepository_InsertUsersRejectsDuplicatePhone(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.InsertUsers(ctx, []*models.User{{ID: "a", Phone: "+5511990000000"}}))
	assert.Error(t, repo.InsertUsers(ctx, []*models.User{{ID: "b", Phone: "+5511990000000"}}))
}

func TestMemoryRepository_PingCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, NewMemoryRepository().Ping(ctx))
}
