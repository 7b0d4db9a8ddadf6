package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sfsergim/CivicReport/internal/models"
	"github.com/sfsergim/CivicReport/internal/observability"
	"go.uber.org/zap"
)

// CSVHeader is the first line of every export
const CSVHeader = "id,category,description,lat,lng,accuracy,status,created_at,validated_at,user_phone"

// CsvEscape always quotes value, doubling embedded quotes
func CsvEscape(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ExportCSV writes matching reports to w as they are read, newest first.
// Phones are masked to their last four digits.
func (s *ReportService) ExportCSV(ctx context.Context, q models.AdminQuery, w io.Writer) error {
	if _, err := io.WriteString(w, CSVHeader+"\n"); err != nil {
		return err
	}

	phones := make(map[string]string)
	phoneFor := func(userID string) (string, error) {
		if phone, ok := phones[userID]; ok {
			return phone, nil
		}
		user, err := s.repo.GetUserByID(ctx, userID)
		switch {
		case errors.Is(err, models.ErrNoDocument):
			phones[userID] = ""
		case err != nil:
			return "", err
		default:
			phones[userID] = observability.MaskPhone(user.Phone)
		}
		return phones[userID], nil
	}

	rows := 0
	err := s.repo.ForEachReport(ctx, adminFilter(q), func(r *models.Report) error {
		phone, err := phoneFor(r.UserID)
		if err != nil {
			return fmt.Errorf("failed to load report owner: %w", err)
		}

		validatedAt := ""
		if r.ValidatedAt != nil {
			validatedAt = formatTime(*r.ValidatedAt)
		}

		line := strings.Join([]string{
			r.ID,
			string(r.Category),
			CsvEscape(r.Description),
			formatFloat(r.Location.Lat()),
			formatFloat(r.Location.Lng()),
			formatFloat(r.AccuracyMeters),
			string(r.Status),
			formatTime(r.CreatedAt),
			validatedAt,
			phone,
		}, ",")

		rows++
		_, err = io.WriteString(w, line+"\n")
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Debug("exported reports csv", zap.Int("rows", rows))
	return nil
}
