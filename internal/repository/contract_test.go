package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sfsergim/CivicReport/internal/models"
	"github.com/sfsergim/CivicReport/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRepositoryContract exercises behaviour every Repository must share
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	newOtp := func(phone, hash string, createdAt time.Time) *models.OtpCode {
		return &models.OtpCode{
			ID:        utils.NewID(),
			Phone:     phone,
			OtpHash:   hash,
			CreatedAt: createdAt,
			ExpiresAt: createdAt.Add(5 * time.Minute),
		}
	}

	newReport := func(userID string, status models.ReportStatus, createdAt time.Time) *models.Report {
		return &models.Report{
			ID:             utils.NewID(),
			UserID:         userID,
			Category:       models.CategoryBuraco,
			Description:    "buraco na rua",
			Location:       models.NewGeoPoint(-23.55, -46.63),
			AccuracyMeters: 10,
			FileKey:        userID + "/photo.jpg",
			Status:         status,
			CreatedAt:      createdAt,
		}
	}

	newAudit := func(reportID, action string, at time.Time) *models.AuditLog {
		return &models.AuditLog{
			ID:        utils.NewID(),
			Entity:    models.AuditEntityReport,
			EntityID:  reportID,
			Action:    action,
			Metadata:  map[string]interface{}{},
			CreatedAt: at,
		}
	}

	t.Run("IssueOtp creates user with placeholder name then updates name", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		user, err := repo.IssueOtp(ctx, "+5511911110000", "", newOtp("+5511911110000", "h1", base))
		require.NoError(t, err)
		assert.Equal(t, models.PlaceholderUserName, user.Name)
		assert.NotEmpty(t, user.ID)

		again, err := repo.IssueOtp(ctx, "+5511911110000", "Maria", newOtp("+5511911110000", "h2", base.Add(time.Second)))
		require.NoError(t, err)
		assert.Equal(t, user.ID, again.ID)
		assert.Equal(t, "Maria", again.Name)

		kept, err := repo.IssueOtp(ctx, "+5511911110000", "", newOtp("+5511911110000", "h3", base.Add(2*time.Second)))
		require.NoError(t, err)
		assert.Equal(t, "Maria", kept.Name)

		count, err := repo.CountUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("ConsumeOtp picks matching unused unexpired code once", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		phone := "+5511922220000"

		_, err := repo.IssueOtp(ctx, phone, "", newOtp(phone, "first", base))
		require.NoError(t, err)
		_, err = repo.IssueOtp(ctx, phone, "", newOtp(phone, "second", base.Add(time.Second)))
		require.NoError(t, err)

		now := base.Add(time.Minute)

		otp, err := repo.ConsumeOtp(ctx, phone, "first", now)
		require.NoError(t, err)
		assert.Equal(t, "first", otp.OtpHash)
		require.NotNil(t, otp.UsedAt)

		_, err = repo.ConsumeOtp(ctx, phone, "first", now)
		assert.True(t, errors.Is(err, models.ErrNoDocument))

		_, err = repo.ConsumeOtp(ctx, phone, "second", base.Add(10*time.Minute))
		assert.True(t, errors.Is(err, models.ErrNoDocument), "expired code must not be consumed")

		_, err = repo.ConsumeOtp(ctx, "+5511000000000", "second", now)
		assert.True(t, errors.Is(err, models.ErrNoDocument))
	})

	t.Run("users by phone and id", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		admin := &models.User{ID: utils.NewID(), Name: "Admin Dev", Phone: "+5511990000000", IsAdmin: true, CreatedAt: base}
		require.NoError(t, repo.InsertUsers(ctx, []*models.User{admin}))

		byPhone, err := repo.GetUserByPhone(ctx, admin.Phone)
		require.NoError(t, err)
		assert.Equal(t, admin.ID, byPhone.ID)
		assert.True(t, byPhone.IsAdmin)

		byID, err := repo.GetUserByID(ctx, admin.ID)
		require.NoError(t, err)
		assert.Equal(t, admin.Phone, byID.Phone)

		demoted, err := repo.SetUserAdmin(ctx, admin.Phone, false)
		require.NoError(t, err)
		assert.False(t, demoted.IsAdmin)

		_, err = repo.GetUserByID(ctx, utils.NewID())
		assert.True(t, errors.Is(err, models.ErrNoDocument))
		_, err = repo.SetUserAdmin(ctx, "+5500000000000", true)
		assert.True(t, errors.Is(err, models.ErrNoDocument))
	})

	t.Run("reports filtered ordered and paged", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := utils.NewID()

		var ids []string
		for i := 0; i < 5; i++ {
			report := newReport(userID, models.StatusApproved, base.Add(time.Duration(i)*time.Minute))
			if i == 4 {
				report.Category = models.CategoryLixo
				report.Location = models.NewGeoPoint(10, 10)
			}
			require.NoError(t, repo.CreateReport(ctx, report, newAudit(report.ID, models.AuditActionCreated, report.CreatedAt)))
			ids = append(ids, report.ID)
		}
		pending := newReport(userID, models.StatusPendingModeration, base.Add(time.Hour))
		require.NoError(t, repo.CreateReport(ctx, pending, newAudit(pending.ID, models.AuditActionCreated, pending.CreatedAt)))

		approved := models.StatusApproved
		all, err := repo.ListReports(ctx, models.ReportFilter{Status: &approved})
		require.NoError(t, err)
		require.Len(t, all, 5)
		assert.Equal(t, ids[4], all[0].ID, "newest first")
		assert.Equal(t, ids[0], all[4].ID)

		page, err := repo.ListReports(ctx, models.ReportFilter{Status: &approved, Skip: 2, Limit: 2})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, ids[2], page[0].ID)
		assert.Equal(t, ids[1], page[1].ID)

		oldest, err := repo.ListReports(ctx, models.ReportFilter{Status: &approved, Order: models.OldestFirst, Limit: 1})
		require.NoError(t, err)
		require.Len(t, oldest, 1)
		assert.Equal(t, ids[0], oldest[0].ID)

		lixo := models.CategoryLixo
		byCategory, err := repo.ListReports(ctx, models.ReportFilter{Category: &lixo})
		require.NoError(t, err)
		require.Len(t, byCategory, 1)
		assert.Equal(t, ids[4], byCategory[0].ID)

		box := &models.BoundingBox{MinLng: -47, MinLat: -24, MaxLng: -46, MaxLat: -23}
		inBox, err := repo.ListReports(ctx, models.ReportFilter{Status: &approved, BBox: box})
		require.NoError(t, err)
		assert.Len(t, inBox, 4)

		from := base.Add(time.Minute)
		to := base.Add(3 * time.Minute)
		window, err := repo.ListReports(ctx, models.ReportFilter{From: &from, To: &to})
		require.NoError(t, err)
		assert.Len(t, window, 3, "from and to are inclusive")

		var streamed []string
		err = repo.ForEachReport(ctx, models.ReportFilter{Order: models.OldestFirst}, func(r *models.Report) error {
			streamed = append(streamed, r.ID)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, append(append([]string{}, ids...), pending.ID), streamed)

		stop := errors.New("stop")
		calls := 0
		err = repo.ForEachReport(ctx, models.ReportFilter{}, func(r *models.Report) error {
			calls++
			return stop
		})
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, 1, calls)
	})

	t.Run("CountUserReportsBetween is half open", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := utils.NewID()
		day := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

		for _, at := range []time.Time{day.Add(-time.Minute), day, day.Add(time.Hour), day.Add(2 * time.Hour)} {
			report := newReport(userID, models.StatusPendingModeration, at)
			require.NoError(t, repo.CreateReport(ctx, report, newAudit(report.ID, models.AuditActionCreated, at)))
		}
		other := newReport(utils.NewID(), models.StatusPendingModeration, day.Add(time.Hour))
		require.NoError(t, repo.CreateReport(ctx, other, newAudit(other.ID, models.AuditActionCreated, other.CreatedAt)))

		count, err := repo.CountUserReportsBetween(ctx, userID, day, day.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("review updates and audit trail", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		actor := utils.NewID()

		report := newReport(utils.NewID(), models.StatusPendingModeration, base)
		require.NoError(t, repo.CreateReport(ctx, report, newAudit(report.ID, models.AuditActionCreated, base)))

		score := 0.4
		reason := "accuracy_too_low"
		report.Status = models.StatusNeedsReview
		report.ModerationScore = &score
		report.ModerationReason = &reason
		applied, err := repo.ApplyModeration(ctx, []models.ModerationDecision{
			{Report: report, Audit: newAudit(report.ID, models.AuditActionNeedsReviewAuto, base.Add(time.Minute))},
		})
		require.NoError(t, err)
		require.Len(t, applied, 1)

		stored, err := repo.GetReport(ctx, report.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusNeedsReview, stored.Status)
		require.NotNil(t, stored.ModerationReason)
		assert.Equal(t, reason, *stored.ModerationReason)
		assert.Nil(t, stored.ValidatedAt)

		validatedAt := base.Add(2 * time.Minute)
		stored.Status = models.StatusApproved
		stored.ValidatedAt = &validatedAt
		stored.ModerationReason = nil
		audit := newAudit(report.ID, models.AuditActionApprovedManual, validatedAt)
		audit.ActorUserID = &actor
		require.NoError(t, repo.UpdateReportReview(ctx, stored, audit))

		approved, err := repo.GetReport(ctx, report.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusApproved, approved.Status)
		require.NotNil(t, approved.ValidatedAt)
		assert.True(t, approved.ValidatedAt.Equal(validatedAt))
		assert.Nil(t, approved.ModerationReason)

		trail, err := repo.ListAuditLogs(ctx, report.ID)
		require.NoError(t, err)
		require.Len(t, trail, 3)
		assert.Equal(t, models.AuditActionCreated, trail[0].Action)
		assert.Equal(t, models.AuditActionNeedsReviewAuto, trail[1].Action)
		assert.Equal(t, models.AuditActionApprovedManual, trail[2].Action)
		require.NotNil(t, trail[2].ActorUserID)
		assert.Equal(t, actor, *trail[2].ActorUserID)
	})

	t.Run("ApplyModeration only touches pending reports", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		pending := newReport(utils.NewID(), models.StatusPendingModeration, base)
		require.NoError(t, repo.CreateReport(ctx, pending, newAudit(pending.ID, models.AuditActionCreated, base)))
		rejected := newReport(utils.NewID(), models.StatusRejected, base)
		require.NoError(t, repo.CreateReport(ctx, rejected, newAudit(rejected.ID, models.AuditActionCreated, base)))
		missing := newReport(utils.NewID(), models.StatusPendingModeration, base)

		decide := func(report *models.Report) models.ModerationDecision {
			approved := *report
			approved.Status = models.StatusApproved
			return models.ModerationDecision{
				Report: &approved,
				Audit:  newAudit(report.ID, models.AuditActionApprovedAuto, base.Add(time.Minute)),
			}
		}

		applied, err := repo.ApplyModeration(ctx, []models.ModerationDecision{
			decide(pending), decide(rejected), decide(missing),
		})
		require.NoError(t, err)
		require.Len(t, applied, 1)
		assert.Equal(t, pending.ID, applied[0].Report.ID)

		stored, err := repo.GetReport(ctx, pending.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusApproved, stored.Status)

		kept, err := repo.GetReport(ctx, rejected.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusRejected, kept.Status)

		trail, err := repo.ListAuditLogs(ctx, rejected.ID)
		require.NoError(t, err)
		assert.Len(t, trail, 1)

		trail, err = repo.ListAuditLogs(ctx, missing.ID)
		require.NoError(t, err)
		assert.Empty(t, trail)
	})

	t.Run("missing report", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.GetReport(context.Background(), utils.NewID())
		assert.True(t, errors.Is(err, models.ErrNoDocument))
	})
}
