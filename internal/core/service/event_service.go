package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventify/eventify/internal/api/metrics"
	"github.com/eventify/eventify/internal/core/domain"
	"github.com/eventify/eventify/internal/core/ports"
)

type eventService struct {
	events        ports.EventRepository
	registrations ports.RegistrationRepository
	log           zerolog.Logger
}

// NewEventService returns an EventService implementation.
func NewEventService(events ports.EventRepository, registrations ports.RegistrationRepository, log zerolog.Logger) ports.EventService {
	return &eventService{events: events, registrations: registrations, log: log}
}

func (s *eventService) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	created, err := s.events.Create(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	metrics.EventsCreatedTotal.Inc()
	s.log.Info().Int64("event_id", created.ID).Int64("organizer_id", created.OrganizerID).Msg("event created")
	return created, nil
}

func (s *eventService) Get(ctx context.Context, id int64) (*domain.Event, error) {
	return s.events.FindByID(ctx, id)
}

func (s *eventService) List(ctx context.Context) ([]domain.Event, error) {
	return s.events.FindAll(ctx)
}

func (s *eventService) Upcoming(ctx context.Context) ([]domain.Event, error) {
	return s.events.FindAfter(ctx, time.Now().UTC())
}

func (s *eventService) ByOrganizer(ctx context.Context, organizerID int64) ([]domain.Event, error) {
	return s.events.FindByOrganizerID(ctx, organizerID)
}

// Update persists changes to an event the organizer owns.
func (s *eventService) Update(ctx context.Context, organizerID int64, event *domain.Event) (*domain.Event, error) {
	current, err := s.events.FindByID(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	if current.OrganizerID != organizerID {
		return nil, domain.ErrForbidden
	}

	event.OrganizerID = current.OrganizerID
	event.CreatedAt = current.CreatedAt
	event.UpdatedAt = time.Now().UTC()
	return s.events.Update(ctx, event)
}

// Delete removes an event the organizer owns, cascading its registrations.
func (s *eventService) Delete(ctx context.Context, organizerID, id int64) error {
	current, err := s.events.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if current.OrganizerID != organizerID {
		return domain.ErrForbidden
	}
	return s.remove(ctx, id)
}

// DeleteAny removes an event regardless of ownership (admin path).
func (s *eventService) DeleteAny(ctx context.Context, id int64) error {
	if _, err := s.events.FindByID(ctx, id); err != nil {
		return err
	}
	return s.remove(ctx, id)
}

func (s *eventService) remove(ctx context.Context, id int64) error {
	if err := s.events.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if err := s.registrations.DeleteByEventID(ctx, id); err != nil {
		s.log.Warn().Err(err).Int64("event_id", id).Msg("failed to cascade registrations")
	}
	s.log.Info().Int64("event_id", id).Msg("event deleted")
	return nil
}
