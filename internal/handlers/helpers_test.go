package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sfsergim/CivicReport/internal/logging"
	"github.com/sfsergim/CivicReport/internal/models"
	"github.com/sfsergim/CivicReport/internal/objectstore"
	"github.com/sfsergim/CivicReport/internal/repository"
	"github.com/sfsergim/CivicReport/internal/services"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testServer wires the full API over the in-memory repository
type testServer struct {
	router  *gin.Engine
	repo    *repository.MemoryRepository
	reports *services.ReportService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	repo := repository.NewMemoryRepository()
	presigner, err := objectstore.NewS3Presigner(context.Background(), objectstore.Options{
		ServiceURL:    "http://localhost:9000",
		Region:        "us-east-1",
		AccessKey:     "minio",
		SecretKey:     "minio123",
		Bucket:        "civicreport",
		PublicURLBase: "http://localhost:9000",
	})
	require.NoError(t, err)

	logger := logging.Logger
	tokens := services.NewTokenService("handlers-test-key", "civicreport", "civicreport", time.Hour)
	limiter := services.NewOtpRateLimiter(nil, 5, 10*time.Minute, logger)
	auth := services.NewAuthService(repo, tokens, limiter, services.AuthConfig{
		OtpSecret: "handlers-otp-secret",
		OtpTTL:    5 * time.Minute,
		ExposeOtp: true,
	}, logger)
	reports := services.NewReportService(repo, presigner, logger)
	uploads := services.NewUploadService(presigner, 15*time.Minute, logger)

	router := gin.New()
	RegisterRoutes(router, Routes{
		Auth:    NewAuthHandlers(logger, auth),
		Reports: NewReportHandlers(logger, reports, uploads),
		Admin:   NewAdminHandlers(logger, reports),
		Health:  NewHealthHandlers(logger, repo, nil),
		Tokens:  tokens,
	})

	return &testServer{router: router, repo: repo, reports: reports}
}

// do sends a request; body may be nil, a string sent verbatim, or a value
// encoded as JSON
func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// login runs the OTP flow for phone and returns the token and user
func (s *testServer) login(t *testing.T, phone, name string) (string, models.UserResponse) {
	t.Helper()

	w := s.do(t, http.MethodPost, "/auth/request-otp", models.RequestOtpRequest{Phone: phone, Name: name}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var otp models.RequestOtpResponse
	decode(t, w, &otp)
	require.Len(t, otp.OtpCode, 6)

	w = s.do(t, http.MethodPost, "/auth/verify-otp", models.VerifyOtpRequest{Phone: phone, Otp: otp.OtpCode}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var verified models.VerifyOtpResponse
	decode(t, w, &verified)
	require.NotEmpty(t, verified.Token)
	return verified.Token, verified.User
}

// adminToken seeds the development users and logs in as the admin
func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	_, err := services.SeedDevUsers(context.Background(), s.repo, logging.Logger)
	require.NoError(t, err)
	token, user := s.login(t, services.DevAdminPhone, "")
	require.True(t, user.IsAdmin)
	return token
}

// submit creates a valid report as token and returns its id
func (s *testServer) submit(t *testing.T, token string, mutate ...func(*models.CreateReportRequest)) string {
	t.Helper()
	req := models.CreateReportRequest{
		Category:       models.CategoryBuraco,
		Description:    "buraco grande na esquina",
		Lat:            -23.55,
		Lng:            -46.63,
		AccuracyMeters: 12,
		FileKey:        "some-user/photo.jpg",
	}
	for _, m := range mutate {
		m(&req)
	}
	w := s.do(t, http.MethodPost, "/reports", req, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.CreateReportResponse
	decode(t, w, &resp)
	return resp.ID
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

func requireError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	var resp ErrorResponse
	decode(t, w, &resp)
	require.Equal(t, code, resp.Error)
}
