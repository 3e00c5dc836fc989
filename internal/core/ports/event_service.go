package ports

import (
	"context"

	"github.com/newyears/event-organizer/internal/core/domain"
)

// ListEventsInput carries the listing filter and page window.
type ListEventsInput struct {
	Filter EventFilter
	Skip   int64
	Limit  int64
}

// EventService is the event lifecycle use-case surface. Every method returns
// either a result or an error wrapping one of the domain error categories.
type EventService interface {
	Create(ctx context.Context, actor domain.Actor, draft domain.EventDraft) (*domain.Event, error)
	Get(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, in ListEventsInput) ([]*domain.Event, error)
	Update(ctx context.Context, actor domain.Actor, id string, patch domain.EventPatch) (*domain.Event, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error

	AddParticipant(ctx context.Context, actor domain.Actor, id string, p domain.Participant) (*domain.Event, error)
	RemoveParticipant(ctx context.Context, actor domain.Actor, id, userID string) (*domain.Event, error)
	UpdateParticipantPayment(ctx context.Context, actor domain.Actor, id, userID string, paidAmount float64) (*domain.Event, error)
}
