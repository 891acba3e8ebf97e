package ports

import (
	"context"

	"github.com/eventify/eventify/internal/core/domain"
)

// AuditRepository persists authentication audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}

// AuditSink accepts audit entries for asynchronous persistence. Record must
// never block the request path beyond a buffered channel send.
type AuditSink interface {
	Record(entry domain.AuditEntry)
}

// LoginLimiter throttles repeated login attempts per identifier. A breach
// returns domain.ErrLoginThrottled; infrastructure faults are swallowed by
// implementations (fail open) so an outage cannot lock everyone out.
type LoginLimiter interface {
	Allow(ctx context.Context, email string) error
}
