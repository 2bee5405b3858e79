package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bookmark_backend/internal/api"
	"bookmark_backend/internal/feature/auth/domain/entity"
	authusecase "bookmark_backend/internal/feature/auth/usecase"
)

// Keys under which AuthRequired stores the identity on the gin context.
const (
	ContextUserID = "userID"
	ContextUser   = "user"
)

// TokenVerifier resolves a token to a user ID.
type TokenVerifier interface {
	Verify(token string) (uint, error)
}

// UserFinder loads the user a verified token refers to.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// AuthRequired returns a Gin middleware that only lets requests with a valid
// bearer token through. Rejected requests are aborted before any handler runs.
func AuthRequired(verifier TokenVerifier, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			unauthorized(c, "missing bearer token")
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if tokenStr == "" {
			unauthorized(c, "empty bearer token")
			return
		}

		// 2. Verify signature and expiry
		userID, err := verifier.Verify(tokenStr)
		if err != nil {
			unauthorized(c, err.Error())
			return
		}

		// 3. Resolve the identity
		user, err := users.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, authusecase.ErrUserNotFound) {
				slog.ErrorContext(ctx, "verified token refers to a missing user", "user_id", userID)
			} else {
				slog.ErrorContext(ctx, "user lookup failed", "user_id", userID, "error", err)
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				api.ErrorResponse{Error: api.ErrCodeInternal, Message: "internal server error"})
			return
		}

		// 4. Attach identity and continue
		c.Set(ContextUserID, user.ID)
		c.Set(ContextUser, user)
		c.Next()
	}
}

// CurrentUserID returns the ID stored by AuthRequired.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// CurrentUser returns the user stored by AuthRequired.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok
}

// unauthorized aborts with the single 401 body used for every token failure.
func unauthorized(c *gin.Context, reason string) {
	slog.InfoContext(c.Request.Context(), "request rejected by auth guard", "reason", reason, "path", c.FullPath())
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		api.ErrorResponse{Error: api.ErrCodeUnauthorized, Message: "authentication required"})
}
