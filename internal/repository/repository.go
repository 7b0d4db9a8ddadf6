// Package repository persists users, OTP codes, reports and audit entries.
package repository

import (
	"context"
	"time"

	"github.com/sfsergim/CivicReport/internal/models"
)

// Repository is the persistence boundary used by services. Lookups that find
// nothing return models.ErrNoDocument.
type Repository interface {
	Ping(ctx context.Context) error

	// IssueOtp upserts the user for phone and stores otp in one unit of work.
	// A blank name keeps the existing name, or uses the placeholder for new users.
	IssueOtp(ctx context.Context, phone, name string, otp *models.OtpCode) (*models.User, error)
	// ConsumeOtp marks the newest unused, unexpired code matching phone and
	// hash as used and returns it.
	ConsumeOtp(ctx context.Context, phone, otpHash string, now time.Time) (*models.OtpCode, error)

	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
	CountUsers(ctx context.Context) (int64, error)
	InsertUsers(ctx context.Context, users []*models.User) error
	SetUserAdmin(ctx context.Context, phone string, isAdmin bool) (*models.User, error)

	// CreateReport stores the report together with its creation audit entry
	CreateReport(ctx context.Context, report *models.Report, audit *models.AuditLog) error
	GetReport(ctx context.Context, id string) (*models.Report, error)
	ListReports(ctx context.Context, filter models.ReportFilter) ([]*models.Report, error)
	// ForEachReport calls fn for every matching report in filter order,
	// stopping at the first error.
	ForEachReport(ctx context.Context, filter models.ReportFilter, fn func(*models.Report) error) error
	// CountUserReportsBetween counts reports by userID created in [from, to)
	CountUserReportsBetween(ctx context.Context, userID string, from, to time.Time) (int64, error)
	// UpdateReportReview persists the review fields of report together with audit
	UpdateReportReview(ctx context.Context, report *models.Report, audit *models.AuditLog) error
	// ApplyModeration persists the decisions whose report is still pending
	// moderation, together with their audit entries, and returns them.
	// Decisions for reports that left the pending state are skipped. A
	// storage failure persists none of them.
	ApplyModeration(ctx context.Context, decisions []models.ModerationDecision) ([]models.ModerationDecision, error)

	ListAuditLogs(ctx context.Context, entityID string) ([]*models.AuditLog, error)
}

// Collections names the MongoDB collections used by the repository
type Collections struct {
	Users     string
	OtpCodes  string
	Reports   string
	AuditLogs string
}
