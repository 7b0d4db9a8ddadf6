package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sfsergim/CivicReport/internal/logging"
	"github.com/sfsergim/CivicReport/internal/models"
	"github.com/sfsergim/CivicReport/internal/objectstore"
	"github.com/sfsergim/CivicReport/internal/repository"
	"github.com/sfsergim/CivicReport/internal/utils"
	"github.com/stretchr/testify/require"
)

const testOtpSecret = "test-otp-secret"

// fakePresigner returns deterministic URLs without touching a store
type fakePresigner struct {
	err error
}

func (f *fakePresigner) PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("http://store.local/civicreport/%s?ttl=%d&type=%s", key, int(ttl.Seconds()), contentType), nil
}

func (f *fakePresigner) PublicURL(key string) string {
	return objectstore.PublicURL("http://localhost:9000/", "civicreport", key)
}

// testClock is a settable clock shared by services under test
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(t time.Time) *testClock { return &testClock{now: t} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// sequenceCodes yields the given OTP codes in order
func sequenceCodes(codes ...string) func() (string, error) {
	i := 0
	return func() (string, error) {
		code := codes[i%len(codes)]
		i++
		return code, nil
	}
}

func newTestReportService(repo repository.Repository, clock *testClock) *ReportService {
	s := NewReportService(repo, &fakePresigner{}, logging.Logger)
	s.now = clock.Now
	return s
}

// insertReport stores a report directly, bypassing validation
func insertReport(t *testing.T, repo repository.Repository, userID string, status models.ReportStatus, createdAt time.Time, mutate ...func(*models.Report)) *models.Report {
	t.Helper()
	report := &models.Report{
		ID:             utils.NewID(),
		UserID:         userID,
		Category:       models.CategoryBuraco,
		Description:    "buraco grande na esquina",
		Location:       models.NewGeoPoint(-23.55, -46.63),
		AccuracyMeters: 10,
		FileKey:        userID + "/photo.jpg",
		PublicPhotoURL: "http://localhost:9000/civicreport/" + userID + "/photo.jpg",
		Status:         status,
		CreatedAt:      createdAt,
	}
	for _, m := range mutate {
		m(report)
	}
	audit := newReportAudit(report.ID, models.AuditActionCreated, &userID, createdAt, map[string]interface{}{})
	require.NoError(t, repo.CreateReport(context.Background(), report, audit))
	return report
}

func requireAppError(t *testing.T, err error, sentinel error, code string) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, sentinel)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code)
}
