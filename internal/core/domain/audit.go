package domain

import "time"

// Audit actions recorded for authentication activity.
const (
	AuditLoginOK        = "login_ok"
	AuditLoginFailed    = "login_failed"
	AuditLogout         = "logout"
	AuditRevokedAttempt = "revoked_token_attempt"
)

// AuditEntry is a single authentication audit record. Actor is the email when
// known, empty otherwise.
type AuditEntry struct {
	Actor  string    `json:"actor,omitempty"`
	Action string    `json:"action"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}
