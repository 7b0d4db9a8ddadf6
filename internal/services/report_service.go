package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sfsergim/CivicReport/internal/logging"
	"github.com/sfsergim/CivicReport/internal/models"
	"github.com/sfsergim/CivicReport/internal/objectstore"
	"github.com/sfsergim/CivicReport/internal/observability"
	"github.com/sfsergim/CivicReport/internal/repository"
	"github.com/sfsergim/CivicReport/internal/utils"
	"go.uber.org/zap"
)

// ReportService handles report submission, the public feed and admin review
type ReportService struct {
	repo      repository.Repository
	presigner objectstore.Presigner
	logger    *logging.SafeLogger
	now       func() time.Time
}

func NewReportService(repo repository.Repository, presigner objectstore.Presigner, logger *logging.SafeLogger) *ReportService {
	return &ReportService{
		repo:      repo,
		presigner: presigner,
		logger:    logger.Named("reports"),
		now:       time.Now,
	}
}

// validateCreate checks and normalises a submission in place
func validateCreate(req *models.CreateReportRequest) error {
	if !req.Category.Valid() {
		return models.InvalidInput(models.CodeInvalidCategory)
	}

	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" || utf8.RuneCountInString(req.Description) > models.MaxDescriptionLength {
		return models.InvalidInput(models.CodeInvalidDescription)
	}

	if math.IsNaN(req.AccuracyMeters) || req.AccuracyMeters <= 0 {
		return models.InvalidInput(models.CodeInvalidAccuracy)
	}

	if math.IsNaN(req.Lat) || math.IsNaN(req.Lng) || math.Abs(req.Lat) > 90 || math.Abs(req.Lng) > 180 {
		return models.InvalidInput(models.CodeInvalidLocation)
	}
	return nil
}

// Create stores a new report awaiting moderation
func (s *ReportService) Create(ctx context.Context, userID string, req models.CreateReportRequest) (*models.CreateReportResponse, error) {
	if err := validateCreate(&req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	report := &models.Report{
		ID:             utils.NewID(),
		UserID:         userID,
		Category:       req.Category,
		Description:    req.Description,
		Location:       models.NewGeoPoint(req.Lat, req.Lng),
		AccuracyMeters: req.AccuracyMeters,
		FileKey:        req.FileKey,
		PublicPhotoURL: s.presigner.PublicURL(req.FileKey),
		Status:         models.StatusPendingModeration,
		CreatedAt:      now,
	}

	audit := newReportAudit(report.ID, models.AuditActionCreated, &userID, now, map[string]interface{}{
		"category": string(report.Category),
	})

	if err := s.repo.CreateReport(ctx, report, audit); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	observability.ReportsCreated.WithLabelValues(string(report.Category)).Inc()
	s.logger.Info("report created",
		zap.String("report_id", report.ID),
		zap.String("user_id", userID),
		zap.String("category", string(report.Category)))

	return &models.CreateReportResponse{ID: report.ID}, nil
}

// ListFeed returns approved reports, newest first
func (s *ReportService) ListFeed(ctx context.Context, q models.FeedQuery) ([]models.FeedItem, error) {
	page, pageSize := utils.NormalizePagination(q.Page, q.PageSize)

	approved := models.StatusApproved
	filter := models.ReportFilter{
		Status: &approved,
		BBox:   utils.ParseBoundingBox(q.BBox),
		From:   utils.ParseTimestamp(q.Since),
		Order:  models.NewestFirst,
		Skip:   (page - 1) * pageSize,
		Limit:  pageSize,
	}
	if category, ok := models.ParseReportCategory(q.Category); ok {
		filter.Category = &category
	}

	reports, err := s.repo.ListReports(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed: %w", err)
	}

	items := make([]models.FeedItem, 0, len(reports))
	for _, r := range reports {
		if !r.Status.IsPublic() {
			continue
		}
		items = append(items, r.ToFeedItem())
	}
	return items, nil
}

// GetPublic returns a single approved report
func (s *ReportService) GetPublic(ctx context.Context, id string) (*models.FeedItem, error) {
	report, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !report.Status.IsPublic() {
		return nil, models.NotFound(models.CodeReportNotFound)
	}
	item := report.ToFeedItem()
	return &item, nil
}

// ListForReview returns reports in status, oldest first
func (s *ReportService) ListForReview(ctx context.Context, status string) ([]models.AdminReportItem, error) {
	parsed, ok := models.ParseReportStatus(status)
	if !ok {
		return nil, models.InvalidInput(models.CodeInvalidStatus)
	}
	return s.listAdmin(ctx, models.ReportFilter{Status: &parsed, Order: models.OldestFirst})
}

// ListAll returns reports matching the admin query, newest first
func (s *ReportService) ListAll(ctx context.Context, q models.AdminQuery) ([]models.AdminReportItem, error) {
	return s.listAdmin(ctx, adminFilter(q))
}

func (s *ReportService) listAdmin(ctx context.Context, filter models.ReportFilter) ([]models.AdminReportItem, error) {
	reports, err := s.repo.ListReports(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	items := make([]models.AdminReportItem, 0, len(reports))
	for _, r := range reports {
		items = append(items, r.ToAdminItem())
	}
	return items, nil
}

// adminFilter builds a filter from the admin query; unparseable values are ignored
func adminFilter(q models.AdminQuery) models.ReportFilter {
	filter := models.ReportFilter{
		From:  utils.ParseTimestamp(q.From),
		To:    utils.ParseTimestamp(q.To),
		Order: models.NewestFirst,
	}
	if category, ok := models.ParseReportCategory(q.Category); ok {
		filter.Category = &category
	}
	if status, ok := models.ParseReportStatus(q.Status); ok {
		filter.Status = &status
	}
	return filter
}

// Approve marks a report approved by actorID
func (s *ReportService) Approve(ctx context.Context, id, actorID string) error {
	report, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	report.Status = models.StatusApproved
	report.ValidatedAt = &now

	audit := newReportAudit(report.ID, models.AuditActionApprovedManual, &actorID, now, map[string]interface{}{})
	return s.review(ctx, report, audit)
}

// Reject marks a report rejected by actorID, storing the optional reason
func (s *ReportService) Reject(ctx context.Context, id, actorID, reason string) error {
	report, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	report.Status = models.StatusRejected
	report.ValidatedAt = &now
	report.ModerationReason = nil

	metadata := map[string]interface{}{}
	if reason = strings.TrimSpace(reason); reason != "" {
		report.ModerationReason = &reason
		metadata["reason"] = reason
	}

	audit := newReportAudit(report.ID, models.AuditActionRejectedManual, &actorID, now, metadata)
	return s.review(ctx, report, audit)
}

func (s *ReportService) review(ctx context.Context, report *models.Report, audit *models.AuditLog) error {
	if err := s.repo.UpdateReportReview(ctx, report, audit); err != nil {
		if errors.Is(err, models.ErrNoDocument) {
			return models.NotFound(models.CodeReportNotFound)
		}
		return fmt.Errorf("failed to update report: %w", err)
	}

	observability.ModerationDecisions.WithLabelValues(audit.Action, "manual").Inc()
	s.logger.Info("report reviewed",
		zap.String("report_id", report.ID),
		zap.String("action", audit.Action),
		zap.String("status", string(report.Status)))
	return nil
}

// AuditTrail returns the audit entries of a report, oldest first
func (s *ReportService) AuditTrail(ctx context.Context, id string) ([]*models.AuditLog, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	entries, err := s.repo.ListAuditLogs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return entries, nil
}

// load fetches a report, mapping absent or malformed ids to NotFound
func (s *ReportService) load(ctx context.Context, id string) (*models.Report, error) {
	if !utils.IsValidID(id) {
		return nil, models.NotFound(models.CodeReportNotFound)
	}
	report, err := s.repo.GetReport(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNoDocument) {
			return nil, models.NotFound(models.CodeReportNotFound)
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	return report, nil
}

func newReportAudit(reportID, action string, actor *string, at time.Time, metadata map[string]interface{}) *models.AuditLog {
	return &models.AuditLog{
		ID:          utils.NewID(),
		Entity:      models.AuditEntityReport,
		EntityID:    reportID,
		Action:      action,
		ActorUserID: actor,
		Metadata:    metadata,
		CreatedAt:   at,
	}
}
