package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventify/eventify/internal/core/domain"
	"github.com/eventify/eventify/internal/core/ports"
	"github.com/eventify/eventify/internal/security/password"
)

type userService struct {
	repo   ports.UserRepository
	hasher password.BcryptVerifier
	log    zerolog.Logger
}

// NewUserService returns a UserService implementation.
func NewUserService(repo ports.UserRepository, log zerolog.Logger) ports.UserService {
	return &userService{repo: repo, hasher: password.NewBcryptVerifier(), log: log}
}

// Register creates an account with the default role. Self-registration can
// never produce an elevated role; promotions go through UpdateRole.
func (s *userService) Register(ctx context.Context, name, email, plaintext string) (*domain.User, error) {
	if name == "" || email == "" || plaintext == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", email).Int64("id", created.ID).Msg("user registered")
	return created, nil
}

func (s *userService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

// UpdateProfile changes the display name. Email and role are not touched
// here; the email is the login identity and roles go through UpdateRole.
func (s *userService) UpdateProfile(ctx context.Context, id int64, name string) (*domain.User, error) {
	updated, err := s.repo.UpdateName(ctx, id, name)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("id", id).Msg("user profile updated")
	return updated, nil
}

// UpdateRole assigns a new role from the closed role set.
func (s *userService) UpdateRole(ctx context.Context, id int64, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	updated, err := s.repo.UpdateRole(ctx, id, domain.NormalizeRole(role))
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("id", id).Str("role", updated.Role).Msg("user role updated")
	return updated, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("id", id).Msg("user deleted")
	return nil
}
