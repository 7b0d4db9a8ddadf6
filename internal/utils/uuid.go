package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a random UUID in canonical form
func NewID() string {
	return uuid.NewString()
}

// NewCompactID returns a random UUID without dashes
func NewCompactID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// IsValidID reports whether id is a parseable UUID
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
