package usecase

import (
	"context"
	"net/url"
	"strings"

	"bookmark_backend/internal/feature/bookmark/domain/entity"
)

// BookmarkRepository abstracts bookmark persistence.
// Every method that addresses a single record takes the owner ID and matches
// on (id, user_id) together, so "missing" and "not yours" collapse into ErrBookmarkNotFound.
type BookmarkRepository interface {
	// ListByOwner returns the owner's bookmarks ordered by ID.
	ListByOwner(ctx context.Context, userID uint) ([]entity.Bookmark, error)

	// FindOwned returns the bookmark with id if userID owns it.
	FindOwned(ctx context.Context, userID, id uint) (*entity.Bookmark, error)

	// Create persists a new bookmark and fills in its ID and timestamps.
	Create(ctx context.Context, b *entity.Bookmark) error

	// UpdateOwned loads the owned bookmark, calls apply on it and saves the
	// result, all in one transaction.
	UpdateOwned(ctx context.Context, userID, id uint, apply func(b *entity.Bookmark)) (*entity.Bookmark, error)

	// DeleteOwned removes the owned bookmark.
	DeleteOwned(ctx context.Context, userID, id uint) error
}

// CreateInput carries the fields of a new bookmark.
type CreateInput struct {
	Title       string
	Description *string
	Link        string
}

// UpdateInput carries a partial update. Nil fields are left unchanged.
type UpdateInput struct {
	Title       *string
	Description *string
	Link        *string
}

// BookmarkUsecase scopes every bookmark operation to the calling user.
type BookmarkUsecase struct {
	repo BookmarkRepository
}

// NewBookmarkUsecase creates a new BookmarkUsecase with the given repository.
func NewBookmarkUsecase(repo BookmarkRepository) *BookmarkUsecase {
	return &BookmarkUsecase{repo: repo}
}

// List returns all bookmarks owned by userID.
func (u *BookmarkUsecase) List(ctx context.Context, userID uint) ([]entity.Bookmark, error) {
	return u.repo.ListByOwner(ctx, userID)
}

// Get returns one bookmark owned by userID, or ErrBookmarkNotFound.
func (u *BookmarkUsecase) Get(ctx context.Context, userID, id uint) (*entity.Bookmark, error) {
	return u.repo.FindOwned(ctx, userID, id)
}

// Create validates in and stores a bookmark owned by userID.
func (u *BookmarkUsecase) Create(ctx context.Context, userID uint, in CreateInput) (*entity.Bookmark, error) {
	title := strings.TrimSpace(in.Title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	link := strings.TrimSpace(in.Link)
	if err := validateLink(link); err != nil {
		return nil, err
	}

	b := &entity.Bookmark{
		UserID:      userID,
		Title:       title,
		Description: in.Description,
		Link:        link,
	}
	if err := u.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Update applies the non-nil fields of in to a bookmark owned by userID.
func (u *BookmarkUsecase) Update(ctx context.Context, userID, id uint, in UpdateInput) (*entity.Bookmark, error) {
	var title, link string
	if in.Title != nil {
		title = strings.TrimSpace(*in.Title)
		if err := validateTitle(title); err != nil {
			return nil, err
		}
	}
	if in.Link != nil {
		link = strings.TrimSpace(*in.Link)
		if err := validateLink(link); err != nil {
			return nil, err
		}
	}

	return u.repo.UpdateOwned(ctx, userID, id, func(b *entity.Bookmark) {
		if in.Title != nil {
			b.Title = title
		}
		if in.Description != nil {
			b.Description = in.Description
		}
		if in.Link != nil {
			b.Link = link
		}
	})
}

// Delete removes a bookmark owned by userID, or returns ErrBookmarkNotFound.
func (u *BookmarkUsecase) Delete(ctx context.Context, userID, id uint) error {
	return u.repo.DeleteOwned(ctx, userID, id)
}

func validateTitle(title string) error {
	if title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	return nil
}

// validateLink accepts absolute URLs with a scheme and a host.
func validateLink(link string) error {
	if link == "" {
		return &ValidationError{Field: "link", Reason: "must not be empty"}
	}
	parsed, err := url.Parse(link)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return &ValidationError{Field: "link", Reason: "must be a valid URL"}
	}
	return nil
}
