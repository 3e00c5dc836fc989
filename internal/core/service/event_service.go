package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/newyears/event-organizer/internal/core/domain"
	"github.com/newyears/event-organizer/internal/core/policy"
	"github.com/newyears/event-organizer/internal/core/ports"
)

type eventService struct {
	repo  ports.EventRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
	now   func() time.Time
}

type noopRecorder struct{}

func (noopRecorder) Record(domain.AuditEntry) {}

// NewEventService returns the event lifecycle service. audit may be nil.
func NewEventService(repo ports.EventRepository, audit ports.AuditRecorder, log zerolog.Logger) ports.EventService {
	if audit == nil {
		audit = noopRecorder{}
	}
	return &eventService{
		repo:  repo,
		audit: audit,
		log:   log,
		now:   time.Now,
	}
}

// Create validates the draft, adds the actor as organizer when missing and
// stores the event.
func (s *eventService) Create(ctx context.Context, actor domain.Actor, draft domain.EventDraft) (*domain.Event, error) {
	if err := policy.Authorize(actor, domain.ActionCreateEvent, nil); err != nil {
		return nil, err
	}

	event, err := domain.NewEvent(draft, actor.Username, s.now())
	if err != nil {
		return nil, err
	}

	id, err := s.repo.Insert(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	event.ID = id

	s.record(actor, domain.ActionCreateEvent, id, "")
	s.log.Info().Str("event_id", id).Str("actor", actor.Username).Msg("event created")
	return event, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	return s.repo.FindByID(ctx, id)
}

// List applies at most one filter dimension over a skip/limit window.
func (s *eventService) List(ctx context.Context, in ports.ListEventsInput) ([]*domain.Event, error) {
	if in.Filter.Organizer != "" && in.Filter.Location != "" {
		return nil, domain.Invalid("filter by organizer or location, not both")
	}
	skip, limit, err := normalizePage(in.Skip, in.Limit)
	if err != nil {
		return nil, err
	}

	events, err := s.repo.Find(ctx, in.Filter, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Update applies only the fields set in patch. The store reporting zero
// modified documents is surfaced as domain.ErrEventNotFound.
func (s *eventService) Update(ctx context.Context, actor domain.Actor, id string, patch domain.EventPatch) (*domain.Event, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, domain.ActionUpdateEvent, current.Organizers); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	patch.UpdatedAt = s.now().UTC()
	modified, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	if modified == 0 {
		return nil, domain.ErrEventNotFound
	}

	s.record(actor, domain.ActionUpdateEvent, id, "")
	s.log.Info().Str("event_id", id).Str("actor", actor.Username).Msg("event updated")
	return s.repo.FindByID(ctx, id)
}

func (s *eventService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, domain.ActionDeleteEvent, current.Organizers); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if deleted == 0 {
		return domain.ErrEventNotFound
	}

	s.record(actor, domain.ActionDeleteEvent, id, "")
	s.log.Info().Str("event_id", id).Str("actor", actor.Username).Msg("event deleted")
	return nil
}

// AddParticipant appends p to the roster. An existing entry with the same
// user_id is not replaced.
func (s *eventService) AddParticipant(ctx context.Context, actor domain.Actor, id string, p domain.Participant) (*domain.Event, error) {
	if err := policy.Authorize(actor, domain.ActionAddParticipant, nil); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}

	modified, err := s.repo.PushParticipant(ctx, id, p, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("add participant: %w", err)
	}
	if modified == 0 {
		return nil, domain.ErrEventNotFound
	}

	s.record(actor, domain.ActionAddParticipant, id, p.UserID)
	s.log.Info().Str("event_id", id).Str("user_id", p.UserID).Str("actor", actor.Username).Msg("participant added")
	return s.repo.FindByID(ctx, id)
}

func (s *eventService) RemoveParticipant(ctx context.Context, actor domain.Actor, id, userID string) (*domain.Event, error) {
	if err := policy.Authorize(actor, domain.ActionRemoveParticipant, nil); err != nil {
		return nil, err
	}

	modified, err := s.repo.PullParticipant(ctx, id, userID, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("remove participant: %w", err)
	}
	if modified == 0 {
		return nil, domain.ErrParticipantNotFound
	}

	s.record(actor, domain.ActionRemoveParticipant, id, userID)
	s.log.Info().Str("event_id", id).Str("user_id", userID).Str("actor", actor.Username).Msg("participant removed")
	return s.repo.FindByID(ctx, id)
}

// UpdateParticipantPayment sets the paid amount of one roster entry. Negative
// or non-finite amounts are rejected before the store is touched.
func (s *eventService) UpdateParticipantPayment(ctx context.Context, actor domain.Actor, id, userID string, paidAmount float64) (*domain.Event, error) {
	if err := policy.Authorize(actor, domain.ActionUpdateParticipantPayment, nil); err != nil {
		return nil, err
	}
	if err := domain.ValidatePaidAmount(paidAmount); err != nil {
		return nil, err
	}

	modified, err := s.repo.SetParticipantPaid(ctx, id, userID, paidAmount, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update participant payment: %w", err)
	}
	if modified == 0 {
		return nil, domain.ErrParticipantNotFound
	}

	s.record(actor, domain.ActionUpdateParticipantPayment, id, userID)
	s.log.Info().
		Str("event_id", id).
		Str("user_id", userID).
		Float64("paid_amount", paidAmount).
		Str("actor", actor.Username).
		Msg("participant payment updated")
	return s.repo.FindByID(ctx, id)
}

func (s *eventService) record(actor domain.Actor, action domain.Action, eventID, subject string) {
	s.audit.Record(domain.AuditEntry{
		EventID:   eventID,
		Action:    action,
		Actor:     actor.Username,
		Subject:   subject,
		Timestamp: s.now().UTC(),
	})
}
