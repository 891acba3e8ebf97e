package ports

import (
	"context"

	"github.com/eventify/eventify/internal/core/domain"
)

// RegistrationService implements event sign-ups.
type RegistrationService interface {
	Register(ctx context.Context, userID, eventID int64) (*domain.Registration, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Registration, error)
	Cancel(ctx context.Context, userID, eventID int64) error
	Count(ctx context.Context, eventID int64) (int64, error)
}
