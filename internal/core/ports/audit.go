package ports

import (
	"context"

	"github.com/agrolink/livestock-api/internal/core/domain"
)

// AuditSink receives identity audit events for asynchronous persistence.
// Record must not block the request path.
type AuditSink interface {
	Record(event domain.AuthEvent)
}

// AuditRepository persists audit events to the auth_events collection.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}
