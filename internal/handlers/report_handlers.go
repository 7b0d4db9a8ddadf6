package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sfsergim/CivicReport/internal/logging"
	"github.com/sfsergim/CivicReport/internal/middleware"
	"github.com/sfsergim/CivicReport/internal/models"
	"github.com/sfsergim/CivicReport/internal/services"
	"github.com/sfsergim/CivicReport/internal/utils"
)

// ReportHandlers handles citizen report submission and the public feed
type ReportHandlers struct {
	logger        *logging.SafeLogger
	reportService *services.ReportService
	uploadService *services.UploadService
}

// NewReportHandlers creates a new report handlers instance
func NewReportHandlers(logger *logging.SafeLogger, reportService *services.ReportService, uploadService *services.UploadService) *ReportHandlers {
	return &ReportHandlers{
		logger:        logger,
		reportService: reportService,
		uploadService: uploadService,
	}
}

// RequestUpload godoc
// @Summary Request a photo upload URL
// @Description Issues a pre-signed PUT URL valid for 15 minutes. Only image/jpeg (default) and image/png are accepted.
// @Tags reports
// @Accept json
// @Produce json
// @Param data body models.UploadURLRequest false "Content type of the photo"
// @Security BearerAuth
// @Success 200 {object} models.UploadURLResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/request-upload [post]
func (h *ReportHandlers) RequestUpload(c *gin.Context) {
	var req models.UploadURLRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	resp, err := h.uploadService.RequestUpload(c.Request.Context(), middleware.GetUserID(c), req.ContentType)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateReport godoc
// @Summary Submit a report
// @Description Stores a new report awaiting moderation. The photo must have been uploaded with a URL from request-upload.
// @Tags reports
// @Accept json
// @Produce json
// @Param data body models.CreateReportRequest true "Report"
// @Security BearerAuth
// @Success 200 {object} models.CreateReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports [post]
func (h *ReportHandlers) CreateReport(c *gin.Context) {
	var req models.CreateReportRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.reportService.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListFeed godoc
// @Summary Public feed
// @Description Approved reports, newest first. Unparseable filters are ignored.
// @Tags reports
// @Produce json
// @Param category query string false "Category (DENGUE, BURACO, MATOALTO, LIXO)"
// @Param bbox query string false "Bounding box minLng,minLat,maxLng,maxLat"
// @Param since query string false "RFC 3339 timestamp, inclusive"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size (max 100)" default(20)
// @Success 200 {array} models.FeedItem
// @Failure 500 {object} ErrorResponse
// @Router /feed [get]
func (h *ReportHandlers) ListFeed(c *gin.Context) {
	q := models.FeedQuery{
		Category: c.Query("category"),
		BBox:     c.Query("bbox"),
		Since:    c.Query("since"),
		Page:     queryInt(c, "page", utils.DefaultPage),
		PageSize: queryInt(c, "pageSize", utils.DefaultPageSize),
	}

	items, err := h.reportService.ListFeed(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetReport godoc
// @Summary Get a public report
// @Description Returns a single approved report
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} models.FeedItem
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/{id} [get]
func (h *ReportHandlers) GetReport(c *gin.Context) {
	item, err := h.reportService.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// queryInt reads an integer query parameter, falling back when absent or malformed
func queryInt(c *gin.Context, key string, fallback int) int {
	value, ok := c.GetQuery(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
