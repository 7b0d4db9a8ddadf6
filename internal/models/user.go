package models

import "time"

// PlaceholderUserName is assigned to users created without a name
const PlaceholderUserName = "Usuário"

// User represents a citizen or administrator identified by phone number
type User struct {
	ID              string    `json:"id" bson:"_id"`
	Name            string    `json:"name" bson:"name"`
	Phone           string    `json:"phone" bson:"phone"`
	IsAdmin         bool      `json:"isAdmin" bson:"is_admin"`
	ReputationScore int       `json:"reputationScore" bson:"reputation_score"`
	CreatedAt       time.Time `json:"createdAt" bson:"created_at"`
}

// UserResponse is the user payload returned after OTP verification
type UserResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	ReputationScore int    `json:"reputationScore"`
	IsAdmin         bool   `json:"isAdmin"`
}

// ToResponse converts a user to its API representation
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Phone:           u.Phone,
		ReputationScore: u.ReputationScore,
		IsAdmin:         u.IsAdmin,
	}
}
