package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_MatchesSentinelOfItsKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"invalid input", InvalidInput(CodeInvalidDescription), ErrInvalidInput},
		{"unauthorized", Unauthorized(CodeInvalidOtp), ErrUnauthorized},
		{"forbidden", Forbidden(CodeAdminRequired), ErrForbidden},
		{"not found", NotFound(CodeReportNotFound), ErrNotFound},
		{"too many requests", TooManyRequests(CodeOtpRateLimited), ErrTooManyRequests},
	}

	all := []error{ErrInvalidInput, ErrUnauthorized, ErrForbidden, ErrNotFound, ErrTooManyRequests, ErrInternal}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, sentinel := range all {
				assert.Equal(t, sentinel == tt.sentinel, errors.Is(tt.err, sentinel), "sentinel %v", sentinel)
			}
		})
	}
}

func TestAppError_Wrapped(t *testing.T) {
	err := fmt.Errorf("creating report: %w", InvalidInput(CodeInvalidAccuracy))

	assert.True(t, errors.Is(err, ErrInvalidInput))

	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, CodeInvalidAccuracy, appErr.Code)
	assert.Equal(t, "invalid_input: invalid_accuracy", appErr.Error())
}
