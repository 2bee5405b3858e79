// Package usecase implements profile reads and edits for the authenticated user.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"bookmark_backend/internal/feature/auth/domain/entity"
)

// UserRepository is the subset of user persistence the profile needs.
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

// EditInput carries a partial profile update. Nil fields are left unchanged.
type EditInput struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// UserUsecase reads and edits the caller's own profile.
type UserUsecase struct {
	users UserRepository
}

// NewUserUsecase creates a new UserUsecase.
func NewUserUsecase(users UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

// Me returns the user with the given ID.
func (u *UserUsecase) Me(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// Edit applies in to the caller's profile.
// An email already used by another account yields the auth ErrEmailTaken from the repository.
func (u *UserUsecase) Edit(ctx context.Context, userID uint, in EditInput) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		user.Email = entity.NormalizeEmail(*in.Email)
	}
	if in.FirstName != nil {
		user.FirstName = trimmed(*in.FirstName)
	}
	if in.LastName != nil {
		user.LastName = trimmed(*in.LastName)
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", userID, err)
	}
	return user, nil
}

// trimmed maps blank names to NULL.
func trimmed(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
