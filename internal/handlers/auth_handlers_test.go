package handlers

import (
	"net/http"
	"testing"

	"github.com/sfsergim/CivicReport/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	token, user := s.login(t, "(21) 98765-4321", "Maria")
	assert.NotEmpty(t, token)
	assert.Equal(t, "Maria", user.Name)
	assert.Equal(t, "+5521987654321", user.Phone)
	assert.False(t, user.IsAdmin)
	assert.Zero(t, user.ReputationScore)
}

func TestRequestOtp_Validation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/auth/request-otp", "{not json", "")
	requireError(t, w, http.StatusBadRequest, models.CodeInvalidBody)

	w = s.do(t, http.MethodPost, "/auth/request-otp", models.RequestOtpRequest{Phone: "  "}, "")
	requireError(t, w, http.StatusBadRequest, models.CodePhoneRequired)
}

func TestRequestOtp_RateLimited(t *testing.T) {
	s := newTestServer(t)
	req := models.RequestOtpRequest{Phone: "+5521987654321"}

	for i := 0; i < 5; i++ {
		w := s.do(t, http.MethodPost, "/auth/request-otp", req, "")
		assert.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
	}

	w := s.do(t, http.MethodPost, "/auth/request-otp", req, "")
	requireError(t, w, http.StatusTooManyRequests, models.CodeOtpRateLimited)
}

func TestVerifyOtp_Failures(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/auth/verify-otp", models.VerifyOtpRequest{Phone: "+5521987654321"}, "")
	requireError(t, w, http.StatusBadRequest, models.CodePhoneAndOtpRequired)

	w = s.do(t, http.MethodPost, "/auth/verify-otp", models.VerifyOtpRequest{Phone: "+5521987654321", Otp: "000000"}, "")
	requireError(t, w, http.StatusUnauthorized, models.CodeInvalidOtp)
}

func TestVerifyOtp_SingleUse(t *testing.T) {
	s := newTestServer(t)
	phone := "+5521987654321"

	w := s.do(t, http.MethodPost, "/auth/request-otp", models.RequestOtpRequest{Phone: phone}, "")
	var otp models.RequestOtpResponse
	decode(t, w, &otp)

	verify := models.VerifyOtpRequest{Phone: phone, Otp: " " + otp.OtpCode + " "}
	w = s.do(t, http.MethodPost, "/auth/verify-otp", verify, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/auth/verify-otp", verify, "")
	requireError(t, w, http.StatusUnauthorized, models.CodeInvalidOtp)
}
