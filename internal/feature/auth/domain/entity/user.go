// Package entity defines the domain entities for the auth feature.
package entity

import (
	"strings"
	"time"
)

// User represents a registered user in the system.
// It contains authentication credentials and profile data.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// It is stored normalized (see NormalizeEmail) and must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// This never stores plaintext and is never written to a response.
	Password string `gorm:"size:255;not null"`

	// FirstName and LastName are optional profile fields.
	FirstName *string `gorm:"size:255"`
	LastName  *string `gorm:"size:255"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// Every write and lookup by email goes through it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
