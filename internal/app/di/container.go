// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"bookmark_backend/internal/app/config"
	authadapters "bookmark_backend/internal/feature/auth/adapters"
	authhandler "bookmark_backend/internal/feature/auth/transport/handler"
	authusecase "bookmark_backend/internal/feature/auth/usecase"
	bookmarkadapters "bookmark_backend/internal/feature/bookmark/adapters"
	bookmarkhandler "bookmark_backend/internal/feature/bookmark/transport/handler"
	bookmarkusecase "bookmark_backend/internal/feature/bookmark/usecase"
	userhandler "bookmark_backend/internal/feature/user/transport/handler"
	userusecase "bookmark_backend/internal/feature/user/usecase"
	"bookmark_backend/internal/platform/cache"
	platformhandler "bookmark_backend/internal/platform/http/handler"
	jwtmw "bookmark_backend/internal/platform/jwt"
	"bookmark_backend/internal/platform/password"
)

// Container holds everything the router mounts.
type Container struct {
	Auth     *authhandler.AuthHandler
	User     *userhandler.UserHandler
	Bookmark *bookmarkhandler.BookmarkHandler
	Health   *platformhandler.HealthHandler
	// Guard is the access guard for the authenticated route group.
	Guard gin.HandlerFunc
}

// NewUserRepository creates the user repository used by every feature.
// If Redis is available, FindByID results are cached; otherwise lookups go straight to the database.
func NewUserRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) authusecase.UserRepository {
	return cache.NewCachingUserRepository(rdb, ttl, authadapters.NewUserRepository(db), "users")
}

// NewContainer wires repositories, usecases and handlers. rdb may be nil.
func NewContainer(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*Container, error) {
	issuer, err := jwtmw.NewIssuer(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create token issuer: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	users := NewUserRepository(rdb, db, cfg.UserCacheTTL)
	hasher := password.NewHasher(cfg.Bcrypt.Cost, cfg.Bcrypt.MaxConcurrency)

	authUC := authusecase.NewAuthUsecase(users, hasher, issuer)
	userUC := userusecase.NewUserUsecase(users)
	bookmarkUC := bookmarkusecase.NewBookmarkUsecase(bookmarkadapters.NewBookmarkRepository(db))

	return &Container{
		Auth:     authhandler.NewAuthHandler(authUC),
		User:     userhandler.NewUserHandler(userUC),
		Bookmark: bookmarkhandler.NewBookmarkHandler(bookmarkUC),
		Health:   platformhandler.NewHealthHandler(sqlDB),
		Guard:    jwtmw.AuthRequired(issuer, users),
	}, nil
}
