package ports

import (
	"context"
	"time"

	"github.com/eventify/eventify/internal/core/domain"
)

// EventRepository defines the interface for event persistence.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id int64) (*domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
	FindAfter(ctx context.Context, after time.Time) ([]domain.Event, error)
	FindByOrganizerID(ctx context.Context, organizerID int64) ([]domain.Event, error)
	Update(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id int64) error
}
