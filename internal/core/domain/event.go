package domain

import "time"

// Event is a scheduled happening users can register for. Capacity is optional;
// nil means unlimited.
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	DateTime    time.Time `json:"date_time"`
	Capacity    *int64    `json:"capacity,omitempty"`
	OrganizerID int64     `json:"organizer_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
