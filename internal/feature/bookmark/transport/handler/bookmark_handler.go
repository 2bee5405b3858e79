// Package handler provides the HTTP handlers for the bookmark feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookmark_backend/internal/api"
	"bookmark_backend/internal/feature/bookmark/domain/entity"
	"bookmark_backend/internal/feature/bookmark/transport/http/dto"
	"bookmark_backend/internal/feature/bookmark/usecase"
	jwtmw "bookmark_backend/internal/platform/jwt"
	"bookmark_backend/internal/platform/http/params"
)

// BookmarkUsecase defines the owner-scoped bookmark operations.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type BookmarkUsecase interface {
	List(ctx context.Context, userID uint) ([]entity.Bookmark, error)
	Get(ctx context.Context, userID, id uint) (*entity.Bookmark, error)
	Create(ctx context.Context, userID uint, in usecase.CreateInput) (*entity.Bookmark, error)
	Update(ctx context.Context, userID, id uint, in usecase.UpdateInput) (*entity.Bookmark, error)
	Delete(ctx context.Context, userID, id uint) error
}

// BookmarkHandler serves /bookmarks. It must be mounted behind jwtmw.AuthRequired.
type BookmarkHandler struct {
	uc BookmarkUsecase
}

// NewBookmarkHandler creates a new BookmarkHandler.
func NewBookmarkHandler(uc BookmarkUsecase) *BookmarkHandler {
	return &BookmarkHandler{uc: uc}
}

// List handles GET /bookmarks.
func (h *BookmarkHandler) List(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	bookmarks, err := h.uc.List(c.Request.Context(), uid)
	if err != nil {
		h.fail(c, err, "list bookmarks")
		return
	}
	out := make([]dto.BookmarkRes, 0, len(bookmarks))
	for i := range bookmarks {
		out = append(out, dto.NewBookmarkRes(&bookmarks[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /bookmarks/:id.
func (h *BookmarkHandler) Get(c *gin.Context) {
	uid, id, ok := currentUserAndID(c)
	if !ok {
		return
	}
	b, err := h.uc.Get(c.Request.Context(), uid, id)
	if err != nil {
		h.fail(c, err, "get bookmark")
		return
	}
	c.JSON(http.StatusOK, dto.NewBookmarkRes(b))
}

// Create handles POST /bookmarks.
func (h *BookmarkHandler) Create(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateBookmarkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(c.Request.Context(), "create bookmark validation failed", "error", err, "user_id", uid)
		c.JSON(http.StatusBadRequest, api.NewValidationError(err))
		return
	}
	b, err := h.uc.Create(c.Request.Context(), uid, usecase.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		h.fail(c, err, "create bookmark")
		return
	}
	c.JSON(http.StatusCreated, dto.NewBookmarkRes(b))
}

// Update handles PATCH /bookmarks/:id.
func (h *BookmarkHandler) Update(c *gin.Context) {
	uid, id, ok := currentUserAndID(c)
	if !ok {
		return
	}
	var req dto.UpdateBookmarkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(c.Request.Context(), "update bookmark validation failed", "error", err, "user_id", uid)
		c.JSON(http.StatusBadRequest, api.NewValidationError(err))
		return
	}
	b, err := h.uc.Update(c.Request.Context(), uid, id, usecase.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		h.fail(c, err, "update bookmark")
		return
	}
	c.JSON(http.StatusOK, dto.NewBookmarkRes(b))
}

// Delete handles DELETE /bookmarks/:id.
func (h *BookmarkHandler) Delete(c *gin.Context) {
	uid, id, ok := currentUserAndID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), uid, id); err != nil {
		h.fail(c, err, "delete bookmark")
		return
	}
	c.Status(http.StatusNoContent)
}

// fail maps usecase errors to responses. Storage errors are logged, never returned.
func (h *BookmarkHandler) fail(c *gin.Context, err error, op string) {
	ctx := c.Request.Context()

	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, api.NewFieldError(verr.Field, verr.Reason))
	case errors.Is(err, usecase.ErrBookmarkNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: api.ErrCodeNotFound, Message: "bookmark not found"})
	default:
		slog.ErrorContext(ctx, op+" failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: api.ErrCodeInternal, Message: "internal server error"})
	}
}

func currentUser(c *gin.Context) (uint, bool) {
	uid, ok := jwtmw.CurrentUserID(c)
	if !ok {
		// Route registered outside the guarded group.
		slog.ErrorContext(c.Request.Context(), "bookmark handler reached without identity", "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: api.ErrCodeInternal, Message: "internal server error"})
		return 0, false
	}
	return uid, true
}

func currentUserAndID(c *gin.Context) (uint, uint, bool) {
	uid, ok := currentUser(c)
	if !ok {
		return 0, 0, false
	}
	id, err := params.PathUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.NewFieldError("id", "must be a non-negative integer"))
		return 0, 0, false
	}
	return uid, id, true
}
