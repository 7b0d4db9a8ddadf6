package models

// RequestOtpRequest is the body of POST /auth/request-otp
type RequestOtpRequest struct {
	Phone string `json:"phone" example:"+5511990000001"`
	Name  string `json:"name,omitempty" example:"Maria"`
}

// RequestOtpResponse is returned after an OTP is issued. OtpCode is only
// populated outside production.
type RequestOtpResponse struct {
	Message string `json:"message" example:"otp_sent"`
	OtpCode string `json:"otp_code,omitempty" example:"123456"`
}

// VerifyOtpRequest is the body of POST /auth/verify-otp
type VerifyOtpRequest struct {
	Phone string `json:"phone" example:"+5511990000001"`
	Otp   string `json:"otp" example:"123456"`
}

// VerifyOtpResponse carries the issued token and the user
type VerifyOtpResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UploadURLRequest is the body of POST /reports/request-upload
type UploadURLRequest struct {
	ContentType string `json:"contentType,omitempty" example:"image/jpeg"`
}

// UploadURLResponse carries the pre-signed PUT URL and the object key
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileKey   string `json:"fileKey"`
}

// CreateReportRequest is the body of POST /reports
type CreateReportRequest struct {
	Category       ReportCategory `json:"category" swaggertype:"string" example:"BURACO"`
	Description    string         `json:"description" example:"Buraco grande na rua"`
	Lat            float64        `json:"lat" example:"-23.55"`
	Lng            float64        `json:"lng" example:"-46.63"`
	AccuracyMeters float64        `json:"accuracyMeters" example:"12"`
	FileKey        string         `json:"fileKey"`
}

// CreateReportResponse carries the new report id
type CreateReportResponse struct {
	ID string `json:"id"`
}

// RejectReportRequest is the optional body of POST /admin/reports/{id}/reject
type RejectReportRequest struct {
	Reason string `json:"reason,omitempty"`
}

// FeedQuery holds the raw feed query parameters
type FeedQuery struct {
	Category string
	BBox     string
	Since    string
	Page     int
	PageSize int
}

// AdminQuery holds the raw admin listing query parameters
type AdminQuery struct {
	Category string
	Status   string
	From     string
	To       string
}
