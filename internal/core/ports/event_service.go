package ports

import (
	"context"

	"github.com/eventify/eventify/internal/core/domain"
)

// EventService implements event management.
type EventService interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Get(ctx context.Context, id int64) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Upcoming(ctx context.Context) ([]domain.Event, error)
	ByOrganizer(ctx context.Context, organizerID int64) ([]domain.Event, error)
	Update(ctx context.Context, organizerID int64, event *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, organizerID, id int64) error
	// DeleteAny removes an event regardless of ownership (admin path) and
	// cascades its registrations.
	DeleteAny(ctx context.Context, id int64) error
}
