package handler

import (
	"time"

	"github.com/eventify/eventify/internal/core/domain"
)

type eventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	DateTime    time.Time `json:"date_time" validate:"required"`
	Capacity    *int64    `json:"capacity" validate:"omitempty,gt=0"`
}

type eventResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	DateTime    time.Time `json:"date_time"`
	Capacity    *int64    `json:"capacity,omitempty"`
	OrganizerID int64     `json:"organizer_id"`
	Registered  int64     `json:"registered"`
}

func toEventResponse(e *domain.Event, registered int64) eventResponse {
	return eventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		DateTime:    e.DateTime,
		Capacity:    e.Capacity,
		OrganizerID: e.OrganizerID,
		Registered:  registered,
	}
}

type registrationResponse struct {
	ID           int64          `json:"id"`
	EventID      int64          `json:"event_id"`
	Status       string         `json:"status"`
	RegisteredAt time.Time      `json:"registered_at"`
	Event        *eventResponse `json:"event,omitempty"`
}

func toRegistrationResponse(r *domain.Registration, event *eventResponse) registrationResponse {
	return registrationResponse{
		ID:           r.ID,
		EventID:      r.EventID,
		Status:       r.Status,
		RegisteredAt: r.RegisteredAt,
		Event:        event,
	}
}
