// Package adapters provides the gorm implementation of the bookmark repository.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bookmark_backend/internal/feature/bookmark/domain/entity"
	"bookmark_backend/internal/feature/bookmark/usecase"
)

// bookmarkRepository implements usecase.BookmarkRepository with gorm.
type bookmarkRepository struct {
	db *gorm.DB
}

var _ usecase.BookmarkRepository = (*bookmarkRepository)(nil)

// NewBookmarkRepository creates a new bookmarkRepository backed by the given connection.
func NewBookmarkRepository(db *gorm.DB) *bookmarkRepository {
	return &bookmarkRepository{db: db}
}

// ListByOwner returns the owner's bookmarks in ascending ID order.
func (r *bookmarkRepository) ListByOwner(ctx context.Context, userID uint) ([]entity.Bookmark, error) {
	bookmarks := make([]entity.Bookmark, 0)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&bookmarks).Error; err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// FindOwned matches on id and owner in a single query.
func (r *bookmarkRepository) FindOwned(ctx context.Context, userID, id uint) (*entity.Bookmark, error) {
	return findOwned(r.db.WithContext(ctx), userID, id)
}

// Create inserts b.
func (r *bookmarkRepository) Create(ctx context.Context, b *entity.Bookmark) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// UpdateOwned runs the ownership lookup and the save in one transaction.
func (r *bookmarkRepository) UpdateOwned(ctx context.Context, userID, id uint, apply func(b *entity.Bookmark)) (*entity.Bookmark, error) {
	var updated *entity.Bookmark
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := findOwned(tx, userID, id)
		if err != nil {
			return err
		}
		apply(b)
		// The owner column is excluded so apply can never move a bookmark to another user.
		if err := tx.Model(b).Select("title", "description", "link", "updated_at").Updates(b).Error; err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteOwned removes the row in one statement. Zero affected rows means the
// bookmark is absent or foreign.
func (r *bookmarkRepository) DeleteOwned(ctx context.Context, userID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.Bookmark{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrBookmarkNotFound
	}
	return nil
}

func findOwned(db *gorm.DB, userID, id uint) (*entity.Bookmark, error) {
	var b entity.Bookmark
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrBookmarkNotFound
		}
		return nil, err
	}
	return &b, nil
}
