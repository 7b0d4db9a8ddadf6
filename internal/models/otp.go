package models

import "time"

// OtpCode is a hashed one-time password issued to a phone
type OtpCode struct {
	ID        string     `json:"id" bson:"_id"`
	Phone     string     `json:"phone" bson:"phone"`
	OtpHash   string     `json:"-" bson:"otp_hash"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time  `json:"expires_at" bson:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty" bson:"used_at"`
}

// Usable reports whether the code is unused and not yet expired at now
func (o *OtpCode) Usable(now time.Time) bool {
	return o.UsedAt == nil && o.ExpiresAt.After(now)
}
