package ports

import (
	"context"

	"github.com/eventify/eventify/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	CredentialStore

	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	UpdateName(ctx context.Context, id int64, name string) (*domain.User, error)
	UpdateRole(ctx context.Context, id int64, role string) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
