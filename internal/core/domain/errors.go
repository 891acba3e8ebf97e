package domain

import "errors"

// Authentication and authorization failures.
var (
	// ErrInvalidCredentials covers both "unknown email" and "wrong password"
	// so the response never reveals which part failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAuthUnavailable signals an infrastructure fault during authentication,
	// not a credentials problem. Callers map it to a 500, never a 401.
	ErrAuthUnavailable = errors.New("authentication service unavailable")
	// ErrUnknownPrincipal means a token decoded fine but its subject no longer
	// exists in the credential store.
	ErrUnknownPrincipal = errors.New("unknown principal")
	ErrForbidden        = errors.New("access forbidden")
	ErrLoginThrottled   = errors.New("too many login attempts")
)

// Business rule failures.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
	ErrInvalidRole          = errors.New("invalid role")
	ErrEventNotFound        = errors.New("event not found")
	ErrEventInPast          = errors.New("event is in the past")
	ErrEventAtCapacity      = errors.New("event is at full capacity")
	ErrRegistrationExists   = errors.New("already registered for event")
	ErrRegistrationNotFound = errors.New("registration not found")
)
