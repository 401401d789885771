package repositories

import (
	"context"

	"github.com/authgrid/auth_backend/internal/core/domain"
)

// UserRepository defines persistence operations for user identity records.
type UserRepository interface {
	// CreateUserIfAbsent inserts the user unless a row with the same
	// (email, provider) pair already exists, in which case the insert is a
	// silent no-op. Returns true when a row was actually inserted. The store
	// must provide atomic insert-or-detect-conflict semantics; this is the
	// correctness contract for concurrent first logins.
	CreateUserIfAbsent(ctx context.Context, user domain.User) (bool, error)

	// FindUserByEmailAndProvider returns the user keyed by (email, provider),
	// or apperrors.ErrNotFound.
	FindUserByEmailAndProvider(ctx context.Context, email string, provider domain.AuthProvider) (*domain.User, error)

	// FindUserByID returns the user with the given id, or apperrors.ErrNotFound.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
}
