package domain

import (
	"strings"
	"time"
)

// Canonical roles. The set is closed: the write path rejects anything else.
const (
	RoleUser      = "ROLE_USER"
	RoleOrganizer = "ROLE_ORGANIZER"
	RoleAdmin     = "ROLE_ADMIN"
)

const rolePrefix = "ROLE_"

// NormalizeRole returns the canonical prefixed form of a role value.
// Values coming off the wire must never be trusted as already normalized.
func NormalizeRole(role string) string {
	role = strings.TrimSpace(role)
	if role == "" {
		return ""
	}
	if !strings.HasPrefix(role, rolePrefix) {
		role = rolePrefix + role
	}
	return role
}

// ValidRole reports whether role (after normalization) belongs to the closed role set.
func ValidRole(role string) bool {
	switch NormalizeRole(role) {
	case RoleUser, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

// User models an account in the system.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
