package ports

import (
	"context"

	"github.com/eventify/eventify/internal/core/domain"
)

// UserService implements account management.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, id int64, name string) (*domain.User, error)
	UpdateRole(ctx context.Context, id int64, role string) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
