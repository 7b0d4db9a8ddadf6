package models

import "github.com/golang-jwt/jwt/v5"

// Claims are the JWT claims issued after OTP verification.
// The subject is the user id.
type Claims struct {
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
	IsAdmin     bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim
func (c *Claims) UserID() string {
	return c.Subject
}
