package ports

import (
	"context"

	"github.com/eventify/eventify/internal/core/domain"
)

// CredentialStore is the lookup path the authentication core depends on.
// Implementations return domain.ErrUserNotFound for a miss; any other error is
// treated as an infrastructure fault.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// PasswordVerifier compares a plaintext password against a stored hash.
type PasswordVerifier interface {
	Matches(plaintext, hash string) bool
}
