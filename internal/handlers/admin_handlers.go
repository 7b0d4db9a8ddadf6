package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sfsergim/CivicReport/internal/logging"
	"github.com/sfsergim/CivicReport/internal/middleware"
	"github.com/sfsergim/CivicReport/internal/models"
	"github.com/sfsergim/CivicReport/internal/services"
	"go.uber.org/zap"
)

// AdminHandlers handles moderation review and export. Every route sits
// behind middleware.RequireAdmin.
type AdminHandlers struct {
	logger        *logging.SafeLogger
	reportService *services.ReportService
}

// NewAdminHandlers creates a new admin handlers instance
func NewAdminHandlers(logger *logging.SafeLogger, reportService *services.ReportService) *AdminHandlers {
	return &AdminHandlers{
		logger:        logger,
		reportService: reportService,
	}
}

func adminQuery(c *gin.Context) models.AdminQuery {
	return models.AdminQuery{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		From:     c.Query("from"),
		To:       c.Query("to"),
	}
}

// ListForReview godoc
// @Summary Review queue
// @Description Reports in the given status, oldest first
// @Tags admin
// @Produce json
// @Param status query string true "Status (PENDINGMODERATION, APPROVED, REJECTED, NEEDSREVIEW, RESOLVED)"
// @Security BearerAuth
// @Success 200 {array} models.AdminReportItem
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/reports/review [get]
func (h *AdminHandlers) ListForReview(c *gin.Context) {
	items, err := h.reportService.ListForReview(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListReports godoc
// @Summary List reports
// @Description All reports, newest first, with optional filters
// @Tags admin
// @Produce json
// @Param category query string false "Category"
// @Param status query string false "Status"
// @Param from query string false "RFC 3339 lower bound, inclusive"
// @Param to query string false "RFC 3339 upper bound, inclusive"
// @Security BearerAuth
// @Success 200 {array} models.AdminReportItem
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/reports [get]
func (h *AdminHandlers) ListReports(c *gin.Context) {
	items, err := h.reportService.ListAll(c.Request.Context(), adminQuery(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ExportCSV godoc
// @Summary Export reports as CSV
// @Description Same filters as the listing. Phones are masked to their last four characters.
// @Tags admin
// @Produce text/csv
// @Param category query string false "Category"
// @Param status query string false "Status"
// @Param from query string false "RFC 3339 lower bound, inclusive"
// @Param to query string false "RFC 3339 upper bound, inclusive"
// @Security BearerAuth
// @Success 200 {string} string "CSV document"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/reports/export.csv [get]
func (h *AdminHandlers) ExportCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="reports.csv"`)
	c.Status(http.StatusOK)

	// Rows are already on the wire when a failure happens, so the status
	// cannot change any more.
	if err := h.reportService.ExportCSV(c.Request.Context(), adminQuery(c), c.Writer); err != nil {
		_ = c.Error(err)
		h.logger.Error("csv export interrupted", zap.Error(err))
	}
}

// ApproveReport godoc
// @Summary Approve a report
// @Tags admin
// @Param id path string true "Report ID"
// @Security BearerAuth
// @Success 200
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/reports/{id}/approve [post]
func (h *AdminHandlers) ApproveReport(c *gin.Context) {
	if err := h.reportService.Approve(c.Request.Context(), c.Param("id"), middleware.GetUserID(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}

// RejectReport godoc
// @Summary Reject a report
// @Tags admin
// @Accept json
// @Param id path string true "Report ID"
// @Param data body models.RejectReportRequest false "Optional reason"
// @Security BearerAuth
// @Success 200
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/reports/{id}/reject [post]
func (h *AdminHandlers) RejectReport(c *gin.Context) {
	var req models.RejectReportRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	if err := h.reportService.Reject(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), req.Reason); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}

// AuditTrail godoc
// @Summary Report audit trail
// @Description Audit entries of a report, oldest first
// @Tags admin
// @Produce json
// @Param id path string true "Report ID"
// @Security BearerAuth
// @Success 200 {array} models.AuditLog
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/reports/{id}/audit [get]
func (h *AdminHandlers) AuditTrail(c *gin.Context) {
	entries, err := h.reportService.AuditTrail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
