// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bookmark_backend/internal/feature/auth/domain/entity"
	"bookmark_backend/internal/feature/auth/usecase"
	"bookmark_backend/internal/platform/db"
)

// userRepository is the gorm implementation of usecase.UserRepository.
// It runs against PostgreSQL in production and SQLite in tests.
type userRepository struct {
	db *gorm.DB
}

// Compile-time check to ensure userRepository implements UserRepository.
var _ usecase.UserRepository = (*userRepository)(nil)

// NewUserRepository creates a new userRepository backed by the given connection.
func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

// Create inserts a user.
// It returns usecase.ErrEmailTaken if the email unique index rejects the row.
func (r *userRepository) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return usecase.ErrEmailTaken
		}
		return err
	}
	return nil
}

// FindByEmail retrieves a user by email.
// It returns usecase.ErrUserNotFound if the user does not exist.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID retrieves a user by ID.
// It returns usecase.ErrUserNotFound if the user does not exist.
func (r *userRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Update writes email and profile fields of an existing user.
// The password column is never touched here.
func (r *userRepository) Update(ctx context.Context, u *entity.User) error {
	result := r.db.WithContext(ctx).
		Model(u).
		Updates(map[string]any{
			"email":      u.Email,
			"first_name": u.FirstName,
			"last_name":  u.LastName,
		})
	if result.Error != nil {
		if db.IsUniqueViolation(result.Error) {
			return usecase.ErrEmailTaken
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}
