// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookmark_backend/internal/api"
	"bookmark_backend/internal/feature/auth/domain/entity"
	"bookmark_backend/internal/feature/auth/transport/http/dto"
	"bookmark_backend/internal/feature/auth/usecase"
	"bookmark_backend/internal/platform/password"
)

// AuthUsecase defines the identity registry operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	// Signup registers a new user and returns a token for them.
	Signup(ctx context.Context, email, password string) (*entity.User, string, error)
	// Login authenticates a user and returns a token on success.
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
}

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup handles POST /auth/signup.
// - 400 on validation errors
// - 403 when the email is already registered
// - 201 with a token on success
func (h *AuthHandler) Signup(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.NewValidationError(err))
		return
	}

	user, token, err := h.auth.Signup(ctx, req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrEmailTaken):
		slog.InfoContext(ctx, "signup rejected: email taken", "remote_addr", c.ClientIP())
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: api.ErrCodeEmailTaken, Message: "email is already registered"})
		return
	case errors.Is(err, password.ErrPasswordTooLong):
		c.JSON(http.StatusBadRequest, api.NewFieldError("password", "must be at most 72 bytes"))
		return
	default:
		slog.ErrorContext(ctx, "signup failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: api.ErrCodeInternal, Message: "internal server error"})
		return
	}

	slog.InfoContext(ctx, "user signup successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.TokenResponse{Token: token})
}

// Login handles POST /auth/signin.
// - 400 on validation errors
// - 403 for an unknown email or a wrong password, with the same body for both
// - 200 with a token on success
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.NewValidationError(err))
		return
	}

	user, token, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.ErrorContext(ctx, "login failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: api.ErrCodeInternal, Message: "internal server error"})
			return
		}
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: api.ErrCodeInvalidCredentials, Message: "invalid email or password"})
		return
	}

	slog.InfoContext(ctx, "user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: token})
}
