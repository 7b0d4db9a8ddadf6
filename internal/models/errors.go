package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so handlers can map them onto HTTP statuses
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindInvalidInput
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindTooManyRequests
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindTooManyRequests:
		return "too_many_requests"
	case KindInternal:
		return "internal_error"
	}
	return "internal_error"
}

// Sentinel errors, one per kind. An AppError matches the sentinel of its
// kind through errors.Is.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrTooManyRequests = errors.New("too many requests")
	ErrInternal        = errors.New("internal error")
)

// AppError carries an error kind plus a machine-readable code
type AppError struct {
	Kind ErrorKind
	Code string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Code)
}

// Is matches the sentinel error of the same kind
func (e *AppError) Is(target error) bool {
	switch target {
	case ErrInvalidInput:
		return e.Kind == KindInvalidInput
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrForbidden:
		return e.Kind == KindForbidden
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrTooManyRequests:
		return e.Kind == KindTooManyRequests
	case ErrInternal:
		return e.Kind == KindInternal
	}
	return false
}

func InvalidInput(code string) *AppError { return &AppError{Kind: KindInvalidInput, Code: code} }
func Unauthorized(code string) *AppError { return &AppError{Kind: KindUnauthorized, Code: code} }
func Forbidden(code string) *AppError    { return &AppError{Kind: KindForbidden, Code: code} }
func NotFound(code string) *AppError     { return &AppError{Kind: KindNotFound, Code: code} }
func TooManyRequests(code string) *AppError {
	return &AppError{Kind: KindTooManyRequests, Code: code}
}

// Error codes returned to clients
const (
	CodePhoneRequired       = "phone_required"
	CodePhoneAndOtpRequired = "phone_and_otp_required"
	CodeInvalidOtp          = "invalid_otp"
	CodeOtpRateLimited      = "otp_rate_limited"
	CodeInvalidContentType  = "invalid_content_type"
	CodeInvalidCategory     = "invalid_category"
	CodeInvalidDescription  = "invalid_description"
	CodeInvalidAccuracy     = "invalid_accuracy"
	CodeInvalidLocation     = "invalid_location"
	CodeInvalidStatus       = "invalid_status"
	CodeInvalidID           = "invalid_id"
	CodeReportNotFound      = "report_not_found"
	CodeUserNotFound        = "user_not_found"
	CodeMissingToken        = "missing_token"
	CodeInvalidToken        = "invalid_token"
	CodeAdminRequired       = "admin_required"
	CodeInvalidBody         = "invalid_body"
)

// ErrNoDocument is returned by repositories when a lookup finds nothing
var ErrNoDocument = errors.New("document not found")
