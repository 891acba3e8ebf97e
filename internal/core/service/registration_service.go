package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventify/eventify/internal/api/metrics"
	"github.com/eventify/eventify/internal/core/domain"
	"github.com/eventify/eventify/internal/core/ports"
)

type registrationService struct {
	registrations ports.RegistrationRepository
	events        ports.EventRepository
	log           zerolog.Logger
}

// NewRegistrationService returns a RegistrationService implementation.
func NewRegistrationService(registrations ports.RegistrationRepository, events ports.EventRepository, log zerolog.Logger) ports.RegistrationService {
	return &registrationService{registrations: registrations, events: events, log: log}
}

// Register signs a user up for an event after the business checks: the event
// exists, is not in the past, the user is not already registered, and capacity
// (when set) is not exhausted.
func (s *registrationService) Register(ctx context.Context, userID, eventID int64) (*domain.Registration, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if event.DateTime.Before(time.Now().UTC()) {
		return nil, domain.ErrEventInPast
	}

	if _, err := s.registrations.FindByUserAndEvent(ctx, userID, eventID); err == nil {
		return nil, domain.ErrRegistrationExists
	} else if !errors.Is(err, domain.ErrRegistrationNotFound) {
		return nil, fmt.Errorf("registration lookup: %w", err)
	}

	if event.Capacity != nil {
		count, err := s.registrations.CountByEventID(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("registration count: %w", err)
		}
		if count >= *event.Capacity {
			return nil, domain.ErrEventAtCapacity
		}
	}

	reg := &domain.Registration{
		UserID:       userID,
		EventID:      eventID,
		Status:       domain.RegistrationConfirmed,
		RegisteredAt: time.Now().UTC(),
	}

	created, err := s.registrations.Create(ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}

	metrics.RegistrationsCreatedTotal.Inc()
	s.log.Info().Int64("user_id", userID).Int64("event_id", eventID).Msg("registration created")
	return created, nil
}

func (s *registrationService) ListByUser(ctx context.Context, userID int64) ([]domain.Registration, error) {
	return s.registrations.FindByUserID(ctx, userID)
}

// Cancel removes a user's registration for an event.
func (s *registrationService) Cancel(ctx context.Context, userID, eventID int64) error {
	reg, err := s.registrations.FindByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if err := s.registrations.Delete(ctx, reg.ID); err != nil {
		return fmt.Errorf("cancel registration: %w", err)
	}
	s.log.Info().Int64("user_id", userID).Int64("event_id", eventID).Msg("registration cancelled")
	return nil
}

func (s *registrationService) Count(ctx context.Context, eventID int64) (int64, error) {
	return s.registrations.CountByEventID(ctx, eventID)
}
