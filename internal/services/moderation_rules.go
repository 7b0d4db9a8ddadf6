package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sfsergim/CivicReport/internal/models"
	"github.com/sfsergim/CivicReport/internal/repository"
)

// Moderation reasons, in evaluation order
const (
	ReasonContainsLink       = "description_contains_link"
	ReasonRepetition         = "description_repetition"
	ReasonAccuracyTooLow     = "accuracy_too_low"
	ReasonDailyLimitExceeded = "daily_limit_exceeded"
)

const (
	maxAccuracyMeters   = 100
	dailyReportLimit    = 3
	minWordsRepetition  = 3
	repeatedWordTrigger = 3
)

// ModerationRules evaluates a report against the auto-moderation heuristics
type ModerationRules struct {
	repo repository.Repository
}

func NewModerationRules(repo repository.Repository) *ModerationRules {
	return &ModerationRules{repo: repo}
}

// Evaluate returns the reason of the first rule the report trips, or "" when
// it passes them all.
func (m *ModerationRules) Evaluate(ctx context.Context, report *models.Report) (string, error) {
	if reason := evaluateContent(report); reason != "" {
		return reason, nil
	}

	created := report.CreatedAt.UTC()
	dayStart := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, time.UTC)
	earlier, err := m.repo.CountUserReportsBetween(ctx, report.UserID, dayStart, created)
	if err != nil {
		return "", fmt.Errorf("failed to count daily reports: %w", err)
	}
	if earlier > dailyReportLimit {
		return ReasonDailyLimitExceeded, nil
	}
	return "", nil
}

// evaluateContent applies the rules that need nothing but the report
func evaluateContent(report *models.Report) string {
	if containsLink(report.Description) {
		return ReasonContainsLink
	}
	if hasRepeatedWords(report.Description) {
		return ReasonRepetition
	}
	if report.AccuracyMeters > maxAccuracyMeters {
		return ReasonAccuracyTooLow
	}
	return ""
}

func containsLink(description string) bool {
	lower := strings.ToLower(description)
	return strings.Contains(lower, "http") || strings.Contains(lower, "www")
}

func hasRepeatedWords(description string) bool {
	words := strings.Fields(description)
	if len(words) < minWordsRepetition {
		return false
	}

	counts := make(map[string]int, len(words))
	for _, word := range words {
		word = strings.ToLower(word)
		counts[word]++
		if counts[word] >= repeatedWordTrigger {
			return true
		}
	}
	return false
}
