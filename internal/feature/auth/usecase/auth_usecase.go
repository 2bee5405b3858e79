package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bookmark_backend/internal/feature/auth/domain/entity"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user to the storage.
	// It returns ErrEmailTaken if a user with the same email already exists.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user matching the specified email address.
	// It returns ErrUserNotFound if the user does not exist.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user matching the specified ID.
	// It returns ErrUserNotFound if the user does not exist.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Update saves the profile fields and email of an existing user.
	// It returns ErrEmailTaken on an email collision and ErrUserNotFound if the row is gone.
	Update(ctx context.Context, user *entity.User) error
}

// PasswordHasher is the credential store used by signup and login.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, hashed string) bool
	VerifyDummy(ctx context.Context, plaintext string) bool
}

// TokenIssuer mints identity tokens.
// Following Go convention: the interface is defined here, not in platform/jwt.
type TokenIssuer interface {
	Issue(userID uint) (string, error)
}

// AuthUsecase implements the identity registry.
type AuthUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewAuthUsecase creates a new AuthUsecase.
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Signup registers a new user and logs them in immediately.
// A duplicate email yields ErrEmailTaken regardless of the password.
func (u *AuthUsecase) Signup(ctx context.Context, email, password string) (*entity.User, string, error) {
	hashed, err := u.hasher.Hash(ctx, password)
	if err != nil {
		return nil, "", err
	}

	user := &entity.User{Email: entity.NormalizeEmail(email), Password: hashed}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// Login authenticates a user and returns a signed token.
// An unknown email still costs one bcrypt comparison so both failure paths take the same time,
// and both return ErrInvalidCredentials.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	email = entity.NormalizeEmail(email)

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		u.hasher.VerifyDummy(ctx, password)
		if !errors.Is(err, ErrUserNotFound) {
			// Storage failure: still reported as invalid credentials, cause kept in the log.
			slog.ErrorContext(ctx, "login lookup failed", "error", err)
		} else {
			slog.InfoContext(ctx, "login rejected", "reason", "unknown email")
		}
		return nil, "", ErrInvalidCredentials
	}

	if !u.hasher.Verify(ctx, password, user.Password) {
		slog.InfoContext(ctx, "login rejected", "reason", "password mismatch", "user_id", user.ID)
		return nil, "", ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}
