package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sfsergim/CivicReport/internal/logging"
	"github.com/sfsergim/CivicReport/internal/models"
	"github.com/sfsergim/CivicReport/internal/observability"
	"github.com/sfsergim/CivicReport/internal/repository"
	"github.com/sfsergim/CivicReport/internal/utils"
	"go.uber.org/zap"
)

const (
	ApprovedScore    = 0.9
	NeedsReviewScore = 0.4
)

// ModerationConfig configures the worker loop
type ModerationConfig struct {
	Interval  time.Duration
	BatchSize int
}

// ModerationWorker periodically auto-moderates pending reports. Running more
// than one worker against the same store is unsupported: reports are not
// claimed before evaluation.
type ModerationWorker struct {
	repo   repository.Repository
	rules  *ModerationRules
	cfg    ModerationConfig
	logger *logging.SafeLogger
	now    func() time.Time
}

func NewModerationWorker(repo repository.Repository, cfg ModerationConfig, logger *logging.SafeLogger) *ModerationWorker {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 20
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 20 * time.Second
	}
	return &ModerationWorker{
		repo:   repo,
		rules:  NewModerationRules(repo),
		cfg:    cfg,
		logger: logger.Named("moderation"),
		now:    time.Now,
	}
}

// Run processes batches until ctx is cancelled. Cycle failures are logged
// and counted, never returned.
func (w *ModerationWorker) Run(ctx context.Context) {
	w.logger.Info("moderation worker started",
		zap.Duration("interval", w.cfg.Interval),
		zap.Int("batch_size", w.cfg.BatchSize))

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("moderation worker stopped")
			return
		case <-timer.C:
			if _, err := w.ProcessBatch(ctx); err != nil && ctx.Err() == nil {
				observability.ModerationCycleFailures.Inc()
				w.logger.Error("error processing moderation queue", zap.Error(err))
			}
			timer.Reset(w.cfg.Interval)
		}
	}
}

// ProcessBatch moderates up to BatchSize pending reports, oldest first, and
// commits all decisions together. Reports an admin reviewed while the batch
// was evaluated keep the admin's decision. It returns the number of reports
// moderated.
func (w *ModerationWorker) ProcessBatch(ctx context.Context) (int, error) {
	ctx, span, done := utils.TraceBusinessLogic(ctx, "moderation_batch")
	defer done()

	pending := models.StatusPendingModeration
	reports, err := w.repo.ListReports(ctx, models.ReportFilter{
		Status: &pending,
		Order:  models.OldestFirst,
		Limit:  w.cfg.BatchSize,
	})
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return 0, fmt.Errorf("failed to load pending reports: %w", err)
	}
	if len(reports) == 0 {
		return 0, nil
	}

	decisions := make([]models.ModerationDecision, 0, len(reports))
	for _, report := range reports {
		if !report.Status.AwaitsModeration() {
			continue
		}
		reason, err := w.rules.Evaluate(ctx, report)
		if err != nil {
			utils.RecordErrorInSpan(span, err, map[string]interface{}{"report_id": report.ID})
			return 0, err
		}
		decisions = append(decisions, w.decide(report, reason))
	}

	applied, err := w.repo.ApplyModeration(ctx, decisions)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return 0, fmt.Errorf("failed to apply moderation: %w", err)
	}
	if skipped := len(decisions) - len(applied); skipped > 0 {
		w.logger.Info("skipped reports reviewed during the batch", zap.Int("skipped", skipped))
	}

	observability.ModerationBatchSize.Observe(float64(len(applied)))
	for _, d := range applied {
		reason := "none"
		if d.Report.ModerationReason != nil {
			reason = *d.Report.ModerationReason
		}
		observability.ModerationDecisions.WithLabelValues(d.Audit.Action, reason).Inc()
	}
	utils.AddSpanAttribute(span, "moderation.count", len(applied))
	w.logger.Info("moderation batch applied", zap.Int("count", len(applied)))

	return len(applied), nil
}

// decide transitions report according to the rule outcome
func (w *ModerationWorker) decide(report *models.Report, reason string) models.ModerationDecision {
	now := w.now().UTC()

	var action string
	var score float64
	switch {
	case reason == "":
		action = models.AuditActionApprovedAuto
		score = ApprovedScore
		report.Status = models.StatusApproved
		report.ValidatedAt = &now
		report.ModerationReason = nil
	default:
		action = models.AuditActionNeedsReviewAuto
		score = NeedsReviewScore
		report.Status = models.StatusNeedsReview
		report.ValidatedAt = nil
		report.ModerationReason = &reason
	}
	report.ModerationScore = &score

	metadata := map[string]interface{}{"score": score}
	if reason != "" {
		metadata["reason"] = reason
	}

	return models.ModerationDecision{
		Report: report,
		Audit:  newReportAudit(report.ID, action, nil, now, metadata),
	}
}
