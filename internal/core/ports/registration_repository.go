package ports

import (
	"context"

	"github.com/eventify/eventify/internal/core/domain"
)

// RegistrationRepository defines the interface for registration persistence.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.Registration) (*domain.Registration, error)
	FindByUserID(ctx context.Context, userID int64) ([]domain.Registration, error)
	FindByUserAndEvent(ctx context.Context, userID, eventID int64) (*domain.Registration, error)
	CountByEventID(ctx context.Context, eventID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
	DeleteByEventID(ctx context.Context, eventID int64) error
}
