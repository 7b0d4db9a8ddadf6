package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/sfsergim/CivicReport/internal/models"
	"github.com/sfsergim/CivicReport/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutes_RequireAdmin(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.login(t, "+5521987654321", "")

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/admin/reports/review?status=NEEDSREVIEW"},
		{http.MethodGet, "/admin/reports"},
		{http.MethodGet, "/admin/reports/export.csv"},
		{http.MethodPost, "/admin/reports/" + utils.NewID() + "/approve"},
		{http.MethodPost, "/admin/reports/" + utils.NewID() + "/reject"},
		{http.MethodGet, "/admin/reports/" + utils.NewID() + "/audit"},
	}

	for _, p := range paths {
		w := s.do(t, p.method, p.path, nil, "")
		requireError(t, w, http.StatusUnauthorized, models.CodeMissingToken)

		w = s.do(t, p.method, p.path, nil, token)
		requireError(t, w, http.StatusForbidden, models.CodeAdminRequired)
	}
}

func TestAdminReview(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)
	token, _ := s.login(t, "+5521987654321", "")

	first := s.submit(t, token)
	second := s.submit(t, token)

	w := s.do(t, http.MethodGet, "/admin/reports/review?status=bogus", nil, admin)
	requireError(t, w, http.StatusBadRequest, models.CodeInvalidStatus)

	w = s.do(t, http.MethodGet, "/admin/reports/review?status=pendingmoderation", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	var queue []models.AdminReportItem
	decode(t, w, &queue)
	require.Len(t, queue, 2)
	assert.Equal(t, float64(12), queue[0].AccuracyMeters)

	w = s.do(t, http.MethodPost, "/admin/reports/"+first+"/approve", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = s.do(t, http.MethodPost, "/admin/reports/"+second+"/reject", models.RejectReportRequest{Reason: "foto ilegível"}, admin)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/admin/reports?status=rejected", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	var rejected []models.AdminReportItem
	decode(t, w, &rejected)
	require.Len(t, rejected, 1)
	assert.Equal(t, second, rejected[0].ID)
	require.NotNil(t, rejected[0].ModerationReason)
	assert.Equal(t, "foto ilegível", *rejected[0].ModerationReason)
	assert.NotNil(t, rejected[0].ValidatedAt)

	w = s.do(t, http.MethodGet, "/admin/reports/"+second+"/audit", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	var trail []models.AuditLog
	decode(t, w, &trail)
	require.Len(t, trail, 2)
	assert.Equal(t, models.AuditActionCreated, trail[0].Action)
	assert.Equal(t, models.AuditActionRejectedManual, trail[1].Action)
}

func TestAdminReview_Errors(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)

	w := s.do(t, http.MethodPost, "/admin/reports/"+utils.NewID()+"/approve", nil, admin)
	requireError(t, w, http.StatusNotFound, models.CodeReportNotFound)

	w = s.do(t, http.MethodPost, "/admin/reports/not-a-uuid/reject", nil, admin)
	requireError(t, w, http.StatusNotFound, models.CodeReportNotFound)

	w = s.do(t, http.MethodGet, "/admin/reports/"+utils.NewID()+"/audit", nil, admin)
	requireError(t, w, http.StatusNotFound, models.CodeReportNotFound)

	w = s.do(t, http.MethodPost, "/admin/reports/"+utils.NewID()+"/reject", "{broken", admin)
	requireError(t, w, http.StatusBadRequest, models.CodeInvalidBody)
}

func TestAdminExportCSV(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)
	token, _ := s.login(t, "+5521987654321", "")

	id := s.submit(t, token, func(r *models.CreateReportRequest) {
		r.Description = `lixo "acumulado"`
	})

	w := s.do(t, http.MethodGet, "/admin/reports/export.csv", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))

	lines := strings.Split(strings.TrimSuffix(w.Body.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,category,description,lat,lng,accuracy,status,created_at,validated_at,user_phone", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], id+`,BURACO,"lixo ""acumulado""",-23.55,-46.63,12,PENDINGMODERATION,`))
	assert.True(t, strings.HasSuffix(lines[1], ",,**********4321"))

	w = s.do(t, http.MethodGet, "/admin/reports/export.csv?status=approved", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, lines[0]+"\n", w.Body.String())
}
