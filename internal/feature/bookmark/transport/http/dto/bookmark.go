// Package dto defines data transfer objects for the bookmark feature's HTTP transport layer.
package dto

import (
	"time"

	"bookmark_backend/internal/feature/bookmark/domain/entity"
)

// CreateBookmarkReq is the body of POST /bookmarks.
// There is no owner field: the owner is always the authenticated user.
type CreateBookmarkReq struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description"`
	Link        string  `json:"link" binding:"required,url"`
}

// UpdateBookmarkReq is the body of PATCH /bookmarks/:id. Omitted fields are left unchanged.
type UpdateBookmarkReq struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	Link        *string `json:"link" binding:"omitempty,url"`
}

// BookmarkRes is the JSON representation of a bookmark.
type BookmarkRes struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"userId"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewBookmarkRes maps an entity to its response body.
func NewBookmarkRes(b *entity.Bookmark) BookmarkRes {
	return BookmarkRes{
		ID:          b.ID,
		UserID:      b.UserID,
		Title:       b.Title,
		Description: b.Description,
		Link:        b.Link,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
