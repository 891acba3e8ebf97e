package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/eventify/eventify/internal/core/domain"
	"github.com/eventify/eventify/internal/core/ports"
)

type authService struct {
	store    ports.CredentialStore
	verifier ports.PasswordVerifier
	log      zerolog.Logger
}

// NewAuthService returns an AuthService backed by the given credential store
// and password verifier.
func NewAuthService(store ports.CredentialStore, verifier ports.PasswordVerifier, log zerolog.Logger) ports.AuthService {
	return &authService{store: store, verifier: verifier, log: log}
}

// Authenticate verifies email/password against the credential store. An
// unknown email and a wrong password produce the same error so the caller
// cannot tell which check failed.
func (s *authService) Authenticate(ctx context.Context, email, password string) (domain.Principal, error) {
	if email == "" || password == "" {
		return domain.Principal{}, domain.ErrInvalidCredentials
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Str("email", email).Msg("login for unknown email")
			return domain.Principal{}, domain.ErrInvalidCredentials
		}
		s.log.Error().Err(err).Msg("credential store lookup failed")
		return domain.Principal{}, domain.ErrAuthUnavailable
	}

	if !s.verifier.Matches(password, user.PasswordHash) {
		s.log.Warn().Str("email", email).Msg("password mismatch")
		return domain.Principal{}, domain.ErrInvalidCredentials
	}

	return domain.PrincipalFromUser(user), nil
}

// Resolve re-reads the principal for a token subject. The returned role is the
// store's current one; a role change after token issuance takes effect on the
// next request.
func (s *authService) Resolve(ctx context.Context, email string) (domain.Principal, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Principal{}, domain.ErrUnknownPrincipal
		}
		return domain.Principal{}, domain.ErrAuthUnavailable
	}
	return domain.PrincipalFromUser(user), nil
}
