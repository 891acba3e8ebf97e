package domain

import "time"

// RegistrationConfirmed is the status applied to every new registration.
const RegistrationConfirmed = "CONFIRMED"

// Registration links a user to an event they signed up for.
type Registration struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	EventID      int64     `json:"event_id"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registered_at"`
}
