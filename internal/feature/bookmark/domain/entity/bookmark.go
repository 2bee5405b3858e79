// Package entity defines the domain entities for the bookmark feature.
package entity

import "time"

// Bookmark is a saved link owned by exactly one user.
type Bookmark struct {
	ID uint `gorm:"primaryKey"`

	// UserID is the owner. It is set at creation and never reassigned.
	UserID uint `gorm:"index;not null"`

	Title       string  `gorm:"size:255;not null"`
	Description *string `gorm:"type:text"`
	Link        string  `gorm:"type:text;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
