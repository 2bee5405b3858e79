// Package password hashes and verifies user passwords with bcrypt.
//
// Every bcrypt call runs under a weighted semaphore.
// Callers wait for a slot on their own goroutine; the HTTP server keeps
// accepting connections while hashes are computed.
package password

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// MaxLength is the longest password bcrypt accepts, in bytes.
const MaxLength = 72

// ErrPasswordTooLong is returned by Hash for inputs longer than MaxLength bytes.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// Hasher is the bcrypt-backed credential store.
type Hasher struct {
	cost int
	sem  *semaphore.Weighted

	dummyOnce sync.Once
	dummy     []byte
}

// NewHasher creates a Hasher. An out-of-range cost falls back to bcrypt.DefaultCost
// and a non-positive concurrency to GOMAXPROCS.
func NewHasher(cost, maxConcurrent int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if maxConcurrent <= 0 {
		maxConcurrent = runtime.GOMAXPROCS(0)
	}
	return &Hasher{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// Hash returns a salted bcrypt hash of plaintext.
func (h *Hasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if len(plaintext) > MaxLength {
		return "", ErrPasswordTooLong
	}
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("wait for hash slot: %w", err)
	}
	defer h.sem.Release(1)

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hashed. A malformed hash or a
// cancelled context yields false.
func (h *Hasher) Verify(ctx context.Context, plaintext, hashed string) bool {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false
	}
	defer h.sem.Release(1)

	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}

// VerifyDummy spends the same work as Verify against a real hash of the
// configured cost and always returns false. Login calls it for unknown emails.
func (h *Hasher) VerifyDummy(ctx context.Context, plaintext string) bool {
	h.dummyOnce.Do(func() {
		// The error can only be ErrPasswordTooLong or an invalid cost, neither possible here.
		h.dummy, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), h.cost)
	})
	h.Verify(ctx, plaintext, string(h.dummy))
	return false
}
