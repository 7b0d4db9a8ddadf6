package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sfsergim/CivicReport/internal/logging"
	"github.com/sfsergim/CivicReport/internal/models"
	"github.com/sfsergim/CivicReport/internal/repository"
	"github.com/sfsergim/CivicReport/internal/utils"
	"go.uber.org/zap"
)

// Development accounts created on an empty store
const (
	DevAdminPhone = "+5511990000000"
	DevUserPhone  = "+5511990000001"
)

// SeedDevUsers inserts the development admin and citizen when the store has
// no users. It reports whether anything was inserted.
func SeedDevUsers(ctx context.Context, repo repository.Repository, logger *logging.SafeLogger) (bool, error) {
	count, err := repo.CountUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	now := time.Now().UTC()
	users := []*models.User{
		{ID: utils.NewID(), Name: "Admin Dev", Phone: DevAdminPhone, IsAdmin: true, CreatedAt: now},
		{ID: utils.NewID(), Name: "Usuário Dev", Phone: DevUserPhone, CreatedAt: now},
	}
	if err := repo.InsertUsers(ctx, users); err != nil {
		return false, fmt.Errorf("failed to seed users: %w", err)
	}

	logger.Info("seeded development users", zap.Int("count", len(users)))
	return true, nil
}

// SetAdmin grants or revokes admin rights for the user with phone
func SetAdmin(ctx context.Context, repo repository.Repository, phone string, isAdmin bool) (*models.User, error) {
	normalized := utils.NormalizePhone(phone)
	if normalized == "" {
		return nil, models.InvalidInput(models.CodePhoneRequired)
	}
	user, err := repo.SetUserAdmin(ctx, normalized, isAdmin)
	if errors.Is(err, models.ErrNoDocument) {
		return nil, models.NotFound(models.CodeUserNotFound)
	}
	return user, err
}
