package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sfsergim/CivicReport/internal/models"
	"github.com/sfsergim/CivicReport/internal/utils"
)

// MemoryRepository keeps everything in process memory (dev/test use)
type MemoryRepository struct {
	mu        sync.RWMutex
	users     map[string]*models.User
	phones    map[string]string
	otps      []*models.OtpCode
	reports   map[string]*models.Report
	auditLogs []*models.AuditLog
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:   make(map[string]*models.User),
		phones:  make(map[string]string),
		reports: make(map[string]*models.Report),
	}
}

func (r *MemoryRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (r *MemoryRepository) IssueOtp(ctx context.Context, phone, name string, otp *models.OtpCode) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[r.phones[phone]]
	if !ok {
		if name == "" {
			name = models.PlaceholderUserName
		}
		user = &models.User{
			ID:        utils.NewID(),
			Name:      name,
			Phone:     phone,
			CreatedAt: otp.CreatedAt,
		}
		r.users[user.ID] = user
		r.phones[phone] = user.ID
	} else if name != "" {
		user.Name = name
	}

	stored := *otp
	r.otps = append(r.otps, &stored)

	copied := *user
	return &copied, nil
}

func (r *MemoryRepository) ConsumeOtp(ctx context.Context, phone, otpHash string, now time.Time) (*models.OtpCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var newest *models.OtpCode
	for _, otp := range r.otps {
		if otp.Phone != phone || otp.OtpHash != otpHash || !otp.Usable(now) {
			continue
		}
		if newest == nil || otp.CreatedAt.After(newest.CreatedAt) {
			newest = otp
		}
	}
	if newest == nil {
		return nil, models.ErrNoDocument
	}

	usedAt := now
	newest.UsedAt = &usedAt
	copied := *newest
	return &copied, nil
}

func (r *MemoryRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, models.ErrNoDocument
	}
	copied := *user
	return &copied, nil
}

func (r *MemoryRepository) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[r.phones[phone]]
	if !ok {
		return nil, models.ErrNoDocument
	}
	copied := *user
	return &copied, nil
}

func (r *MemoryRepository) CountUsers(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

func (r *MemoryRepository) InsertUsers(ctx context.Context, users []*models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range users {
		if _, exists := r.phones[user.Phone]; exists {
			return fmt.Errorf("user with phone %s already exists", user.Phone)
		}
	}
	for _, user := range users {
		copied := *user
		r.users[copied.ID] = &copied
		r.phones[copied.Phone] = copied.ID
	}
	return nil
}

func (r *MemoryRepository) SetUserAdmin(ctx context.Context, phone string, isAdmin bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[r.phones[phone]]
	if !ok {
		return nil, models.ErrNoDocument
	}
	user.IsAdmin = isAdmin
	copied := *user
	return &copied, nil
}

func (r *MemoryRepository) CreateReport(ctx context.Context, report *models.Report, audit *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reports[report.ID]; exists {
		return fmt.Errorf("report %s already exists", report.ID)
	}
	r.reports[report.ID] = copyReport(report)
	r.appendAudit(audit)
	return nil
}

func (r *MemoryRepository) GetReport(ctx context.Context, id string) (*models.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, ok := r.reports[id]
	if !ok {
		return nil, models.ErrNoDocument
	}
	return copyReport(report), nil
}

func (r *MemoryRepository) ListReports(ctx context.Context, filter models.ReportFilter) ([]*models.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.selectReports(filter), nil
}

func (r *MemoryRepository) ForEachReport(ctx context.Context, filter models.ReportFilter, fn func(*models.Report) error) error {
	r.mu.RLock()
	reports := r.selectReports(filter)
	r.mu.RUnlock()

	for _, report := range reports {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(report); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemoryRepository) CountUserReportsBetween(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, report := range r.reports {
		if report.UserID != userID {
			continue
		}
		if !report.CreatedAt.Before(from) && report.CreatedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

func (r *MemoryRepository) UpdateReportReview(ctx context.Context, report *models.Report, audit *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.reports[report.ID]
	if !ok {
		return models.ErrNoDocument
	}
	applyReview(stored, report)
	r.appendAudit(audit)
	return nil
}

func (r *MemoryRepository) ApplyModeration(ctx context.Context, decisions []models.ModerationDecision) ([]models.ModerationDecision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var applied []models.ModerationDecision
	for _, d := range decisions {
		stored, ok := r.reports[d.Report.ID]
		if !ok || stored.Status != models.StatusPendingModeration {
			continue
		}
		applyReview(stored, d.Report)
		r.appendAudit(d.Audit)
		applied = append(applied, d)
	}
	return applied, nil
}

func (r *MemoryRepository) ListAuditLogs(ctx context.Context, entityID string) ([]*models.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.AuditLog, 0)
	for _, entry := range r.auditLogs {
		if entry.EntityID == entityID {
			copied := *entry
			result = append(result, &copied)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// selectReports filters, orders and pages reports; callers hold the lock
func (r *MemoryRepository) selectReports(filter models.ReportFilter) []*models.Report {
	matched := make([]*models.Report, 0)
	for _, report := range r.reports {
		if filter.Matches(report) {
			matched = append(matched, copyReport(report))
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.CreatedAt.Equal(b.CreatedAt) {
			if filter.Order == models.OldestFirst {
				return a.ID < b.ID
			}
			return a.ID > b.ID
		}
		if filter.Order == models.OldestFirst {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	if filter.Skip > 0 {
		if filter.Skip >= len(matched) {
			return []*models.Report{}
		}
		matched = matched[filter.Skip:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched
}

func (r *MemoryRepository) appendAudit(audit *models.AuditLog) {
	if audit == nil {
		return
	}
	copied := *audit
	r.auditLogs = append(r.auditLogs, &copied)
}

// applyReview copies the moderation fields from src onto dst
func applyReview(dst, src *models.Report) {
	updated := copyReport(src)
	dst.Status = updated.Status
	dst.ModerationScore = updated.ModerationScore
	dst.ModerationReason = updated.ModerationReason
	dst.ValidatedAt = updated.ValidatedAt
}

func copyReport(report *models.Report) *models.Report {
	copied := *report
	if report.ModerationScore != nil {
		score := *report.ModerationScore
		copied.ModerationScore = &score
	}
	if report.ModerationReason != nil {
		reason := *report.ModerationReason
		copied.ModerationReason = &reason
	}
	if report.ValidatedAt != nil {
		validatedAt := *report.ValidatedAt
		copied.ValidatedAt = &validatedAt
	}
	return &copied
}

var _ Repository = (*MemoryRepository)(nil)
