package ports

import (
	"context"

	"github.com/eventify/eventify/internal/core/domain"
)

// AuthService verifies credentials and resolves principals.
type AuthService interface {
	// Authenticate checks email/password against the credential store and
	// returns the principal on success. A store miss and a password mismatch
	// both yield domain.ErrInvalidCredentials; infrastructure faults yield
	// domain.ErrAuthUnavailable.
	Authenticate(ctx context.Context, email, password string) (domain.Principal, error)

	// Resolve re-reads the principal for an already-decoded token subject.
	// The role comes from the store, never from the token.
	Resolve(ctx context.Context, email string) (domain.Principal, error)
}
