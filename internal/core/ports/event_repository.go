package ports

import (
	"context"
	"time"

	"github.com/newyears/event-organizer/internal/core/domain"
)

// EventFilter selects events by at most one dimension. The zero value
// matches every event.
type EventFilter struct {
	Organizer string
	Location  string
}

// EventRepository persists event documents. Mutations return the number of
// documents the store reports as modified or deleted; a malformed identifier
// behaves like a missing one.
type EventRepository interface {
	Insert(ctx context.Context, event *domain.Event) (string, error)
	// FindByID returns domain.ErrEventNotFound when the event does not exist.
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	Find(ctx context.Context, filter EventFilter, skip, limit int64) ([]*domain.Event, error)
	Update(ctx context.Context, id string, patch domain.EventPatch) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)

	// PushParticipant appends p to the roster and stamps updatedAt.
	PushParticipant(ctx context.Context, id string, p domain.Participant, updatedAt time.Time) (int64, error)
	// PullParticipant removes every roster entry for userID. It modifies
	// nothing when no entry matches.
	PullParticipant(ctx context.Context, id, userID string, updatedAt time.Time) (int64, error)
	// SetParticipantPaid sets paid_amount on the first roster entry for userID.
	// It modifies nothing when no entry matches.
	SetParticipantPaid(ctx context.Context, id, userID string, paidAmount float64, updatedAt time.Time) (int64, error)
}

// AuditRepository persists the audit trail of event mutations.
type AuditRepository interface {
	Insert(ctx context.Context, entry domain.AuditEntry) error
}

// AuditRecorder accepts audit entries without blocking the caller.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}
