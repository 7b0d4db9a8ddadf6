package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sfsergim/CivicReport/internal/logging"
	"github.com/sfsergim/CivicReport/internal/models"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error" example:"invalid_description"`
}

// HealthResponse reports the state of the service and its dependencies
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

const codeInternalError = "internal_error"

// statusForKind maps an error kind onto an HTTP status
func statusForKind(kind models.ErrorKind) int {
	switch kind {
	case models.KindInvalidInput:
		return http.StatusBadRequest
	case models.KindUnauthorized:
		return http.StatusUnauthorized
	case models.KindForbidden:
		return http.StatusForbidden
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindTooManyRequests:
		return http.StatusTooManyRequests
	case models.KindInternal:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// respondError writes err as an ErrorResponse. Anything that is not a client
// error is logged and hidden behind internal_error.
func respondError(c *gin.Context, logger *logging.SafeLogger, err error) {
	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Kind != models.KindInternal {
		c.JSON(statusForKind(appErr.Kind), ErrorResponse{Error: appErr.Code})
		return
	}

	_ = c.Error(err)
	logger.Error("request failed",
		zap.String("route", c.FullPath()),
		zap.String("method", c.Request.Method),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: codeInternalError})
}

// bindJSON decodes the request body into dst, answering invalid_body on failure
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: models.CodeInvalidBody})
		return false
	}
	return true
}
