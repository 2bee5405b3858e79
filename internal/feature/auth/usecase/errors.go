// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when attempting to create or rename a user to an email that already exists.
	ErrEmailTaken = errors.New("email already taken")

	// ErrInvalidCredentials is returned by Login for an unknown email and for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
