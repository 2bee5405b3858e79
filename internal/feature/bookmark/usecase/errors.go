// Package usecase implements the ownership-scoped bookmark operations.
package usecase

import (
	"errors"
	"fmt"
)

// ErrBookmarkNotFound is returned when a bookmark does not exist or belongs to someone else.
// Callers cannot tell the two cases apart.
var ErrBookmarkNotFound = errors.New("bookmark not found")

// ValidationError reports a single rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
