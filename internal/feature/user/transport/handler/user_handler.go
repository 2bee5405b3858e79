// Package handler provides the HTTP handlers for the user feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookmark_backend/internal/api"
	"bookmark_backend/internal/feature/auth/domain/entity"
	authusecase "bookmark_backend/internal/feature/auth/usecase"
	"bookmark_backend/internal/feature/user/transport/http/dto"
	"bookmark_backend/internal/feature/user/usecase"
	jwtmw "bookmark_backend/internal/platform/jwt"
)

// UserUsecase defines the profile operations used by the handler.
type UserUsecase interface {
	Me(ctx context.Context, userID uint) (*entity.User, error)
	Edit(ctx context.Context, userID uint, in usecase.EditInput) (*entity.User, error)
}

// UserHandler serves /users. It must be mounted behind jwtmw.AuthRequired.
type UserHandler struct {
	uc UserUsecase
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(uc UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Me handles GET /users/me.
func (h *UserHandler) Me(c *gin.Context) {
	uid, ok := jwtmw.CurrentUserID(c)
	if !ok {
		internalError(c, errors.New("no identity on context"), "get me")
		return
	}
	user, err := h.uc.Me(c.Request.Context(), uid)
	if err != nil {
		internalError(c, err, "get me")
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}

// Edit handles PATCH /users.
// - 400 on validation errors
// - 403 when the new email belongs to another account
// - 200 with the updated user
func (h *UserHandler) Edit(c *gin.Context) {
	ctx := c.Request.Context()

	uid, ok := jwtmw.CurrentUserID(c)
	if !ok {
		internalError(c, errors.New("no identity on context"), "edit user")
		return
	}

	var req dto.EditUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "edit user validation failed", "error", err, "user_id", uid)
		c.JSON(http.StatusBadRequest, api.NewValidationError(err))
		return
	}

	user, err := h.uc.Edit(ctx, uid, usecase.EditInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, authusecase.ErrEmailTaken) {
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: api.ErrCodeEmailTaken, Message: "email is already registered"})
			return
		}
		internalError(c, err, "edit user")
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}

func internalError(c *gin.Context, err error, op string) {
	slog.ErrorContext(c.Request.Context(), op+" failed", "error", err)
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: api.ErrCodeInternal, Message: "internal server error"})
}
