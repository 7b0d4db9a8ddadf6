package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sfsergim/CivicReport/internal/logging"
	"github.com/sfsergim/CivicReport/internal/models"
	"github.com/sfsergim/CivicReport/internal/services"
)

// AuthHandlers handles the phone + OTP login flow
type AuthHandlers struct {
	logger      *logging.SafeLogger
	authService *services.AuthService
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(logger *logging.SafeLogger, authService *services.AuthService) *AuthHandlers {
	return &AuthHandlers{
		logger:      logger,
		authService: authService,
	}
}

// RequestOtp godoc
// @Summary Request a login code
// @Description Creates the user on first contact and issues a 6-digit one-time code valid for 5 minutes. The code is echoed back outside production.
// @Tags auth
// @Accept json
// @Produce json
// @Param data body models.RequestOtpRequest true "Phone and optional display name"
// @Success 200 {object} models.RequestOtpResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/request-otp [post]
func (h *AuthHandlers) RequestOtp(c *gin.Context) {
	var req models.RequestOtpRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.RequestOtp(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyOtp godoc
// @Summary Exchange a login code for a token
// @Description Consumes the newest matching unused code and returns a bearer token valid for 12 hours.
// @Tags auth
// @Accept json
// @Produce json
// @Param data body models.VerifyOtpRequest true "Phone and code"
// @Success 200 {object} models.VerifyOtpResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/verify-otp [post]
func (h *AuthHandlers) VerifyOtp(c *gin.Context) {
	var req models.VerifyOtpRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.VerifyOtp(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
