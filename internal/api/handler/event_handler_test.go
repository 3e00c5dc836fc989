package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/newyears/event-organizer/internal/core/domain"
	"github.com/newyears/event-organizer/internal/core/ports"
)

// stubEventService records the arguments of the last call and returns event
// or err.
type stubEventService struct {
	event *domain.Event
	err   error

	actor   domain.Actor
	id      string
	userID  string
	amount  float64
	draft   domain.EventDraft
	patch   domain.EventPatch
	part    domain.Participant
	listIn  ports.ListEventsInput
	deleted bool
}

func (s *stubEventService) Create(_ context.Context, actor domain.Actor, d domain.EventDraft) (*domain.Event, error) {
	s.actor, s.draft = actor, d
	return s.event, s.err
}

func (s *stubEventService) Get(_ context.Context, id string) (*domain.Event, error) {
	s.id = id
	return s.event, s.err
}

func (s *stubEventService) List(_ context.Context, in ports.ListEventsInput) ([]*domain.Event, error) {
	s.listIn = in
	if s.err != nil {
		return nil, s.err
	}
	return []*domain.Event{s.event}, nil
}

func (s *stubEventService) Update(_ context.Context, actor domain.Actor, id string, p domain.EventPatch) (*domain.Event, error) {
	s.actor, s.id, s.patch = actor, id, p
	return s.event, s.err
}

func (s *stubEventService) Delete(_ context.Context, actor domain.Actor, id string) error {
	s.actor, s.id, s.deleted = actor, id, s.err == nil
	return s.err
}

func (s *stubEventService) AddParticipant(_ context.Context, actor domain.Actor, id string, p domain.Participant) (*domain.Event, error) {
	s.actor, s.id, s.part = actor, id, p
	return s.event, s.err
}

func (s *stubEventService) RemoveParticipant(_ context.Context, actor domain.Actor, id, userID string) (*domain.Event, error) {
	s.actor, s.id, s.userID = actor, id, userID
	return s.event, s.err
}

func (s *stubEventService) UpdateParticipantPayment(_ context.Context, actor domain.Actor, id, userID string, amount float64) (*domain.Event, error) {
	s.actor, s.id, s.userID, s.amount = actor, id, userID, amount
	return s.event, s.err
}

var organizer = &domain.User{ID: "u1", Username: "alice", Role: domain.RoleOrganizer}

func sampleEvent() *domain.Event {
	return &domain.Event{
		ID:          "evt-1",
		Organizers:  []string{"alice"},
		Locations:   []string{"Lisbon"},
		Description: "New Year's Eve",
		Schedule:    domain.Schedule{StartDate: "2026-12-31", StartTime: "20:00"},
		Participants: []domain.Participant{
			{UserID: "bob", DuePayment: 50},
		},
		CreatedAt: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestEventHandler_Create(t *testing.T) {
	stub := &stubEventService{event: sampleEvent()}
	c, rec := newTestContext(http.MethodPost, "/events", `{
		"organizers": [],
		"locations": ["Lisbon"],
		"description": "New Year's Eve",
		"schedule": {"start_date": "2026-12-31", "start_time": "20:00"},
		"participants": [{"user_id": "bob", "due_payment": 50}]
	}`)
	withActor(c, organizer)

	if err := NewEventHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if stub.actor.Username != "alice" {
		t.Errorf("expected actor alice, got %+v", stub.actor)
	}
	if len(stub.draft.Participants) != 1 || stub.draft.Participants[0].Tags == nil {
		t.Errorf("expected participant with non-nil tags, got %+v", stub.draft.Participants)
	}

	var resp eventResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != "evt-1" || resp.Images == nil || resp.Participants[0].Tags == nil {
		t.Errorf("unexpected payload: %+v", resp)
	}
}

func TestEventHandler_Create_MissingLocations(t *testing.T) {
	c, _ := newTestContext(http.MethodPost, "/events", `{
		"description": "x",
		"schedule": {"start_date": "2026-12-31", "start_time": "20:00"}
	}`)
	withActor(c, organizer)

	if err := NewEventHandler(&stubEventService{}).Create(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestEventHandler_Get_NotFound(t *testing.T) {
	stub := &stubEventService{err: domain.ErrEventNotFound}
	c, _ := newTestContext(http.MethodGet, "/events/missing", "")
	withParams(c, "id", "missing")

	if err := NewEventHandler(stub).Get(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if stub.id != "missing" {
		t.Errorf("expected id missing, got %s", stub.id)
	}
}

func TestEventHandler_List_Filters(t *testing.T) {
	stub := &stubEventService{event: sampleEvent()}
	c, rec := newTestContext(http.MethodGet, "/events?location=Lisbon&skip=2&limit=20", "")

	if err := NewEventHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	want := ports.ListEventsInput{Filter: ports.EventFilter{Location: "Lisbon"}, Skip: 2, Limit: 20}
	if stub.listIn != want {
		t.Errorf("expected %+v, got %+v", want, stub.listIn)
	}

	var resp []eventResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || len(resp) != 1 {
		t.Fatalf("unexpected payload %s: %v", rec.Body.String(), err)
	}
}

func TestEventHandler_Update_PartialPatch(t *testing.T) {
	stub := &stubEventService{event: sampleEvent()}
	c, _ := newTestContext(http.MethodPatch, "/events/evt-1", `{"description": "Updated"}`)
	withActor(c, organizer)
	withParams(c, "id", "evt-1")

	if err := NewEventHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.patch.Description == nil || *stub.patch.Description != "Updated" {
		t.Fatalf("expected description in patch, got %+v", stub.patch)
	}
	if stub.patch.Organizers != nil || stub.patch.Schedule != nil {
		t.Errorf("expected absent fields to stay nil, got %+v", stub.patch)
	}
}

func TestEventHandler_Update_Forbidden(t *testing.T) {
	stub := &stubEventService{err: domain.ErrForbidden}
	c, _ := newTestContext(http.MethodPatch, "/events/evt-1", `{"description": "x"}`)
	withActor(c, &domain.User{Username: "mallory", Role: domain.RoleUser})
	withParams(c, "id", "evt-1")

	if err := NewEventHandler(stub).Update(c); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestEventHandler_Delete(t *testing.T) {
	stub := &stubEventService{}
	c, rec := newTestContext(http.MethodDelete, "/events/evt-1", "")
	withActor(c, organizer)
	withParams(c, "id", "evt-1")

	if err := NewEventHandler(stub).Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !stub.deleted || rec.Code != http.StatusOK {
		t.Fatalf("expected delete with 200, got %d", rec.Code)
	}
}

func TestEventHandler_Delete_RequiresActor(t *testing.T) {
	c, _ := newTestContext(http.MethodDelete, "/events/evt-1", "")
	withParams(c, "id", "evt-1")

	if err := NewEventHandler(&stubEventService{}).Delete(c); err == nil {
		t.Fatal("expected error without actor")
	}
}

func TestEventHandler_AddParticipant(t *testing.T) {
	stub := &stubEventService{event: sampleEvent()}
	c, _ := newTestContext(http.MethodPost, "/events/evt-1/participants",
		`{"user_id": "carol", "tags": ["vegan"], "due_payment": 30}`)
	withActor(c, &domain.User{Username: "carol", Role: domain.RoleUser})
	withParams(c, "id", "evt-1")

	if err := NewEventHandler(stub).AddParticipant(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.part.UserID != "carol" || stub.part.DuePayment != 30 || stub.part.Tags[0] != "vegan" {
		t.Errorf("unexpected participant %+v", stub.part)
	}
}

func TestEventHandler_RemoveParticipant_NotFound(t *testing.T) {
	stub := &stubEventService{err: domain.ErrParticipantNotFound}
	c, _ := newTestContext(http.MethodDelete, "/events/evt-1/participants/bob", "")
	withActor(c, organizer)
	withParams(c, "id", "evt-1", "user_id", "bob")

	if err := NewEventHandler(stub).RemoveParticipant(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if stub.userID != "bob" {
		t.Errorf("expected user_id bob, got %s", stub.userID)
	}
}

func TestEventHandler_UpdatePayment_FromQuery(t *testing.T) {
	stub := &stubEventService{event: sampleEvent()}
	c, _ := newTestContext(http.MethodPatch, "/events/evt-1/participants/bob/payment?paid_amount=40", "")
	withActor(c, organizer)
	withParams(c, "id", "evt-1", "user_id", "bob")

	if err := NewEventHandler(stub).UpdatePayment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.amount != 40 {
		t.Errorf("expected 40, got %v", stub.amount)
	}
}

func TestEventHandler_UpdatePayment_FromBody(t *testing.T) {
	stub := &stubEventService{event: sampleEvent()}
	c, _ := newTestContext(http.MethodPatch, "/events/evt-1/participants/bob/payment", `{"paid_amount": 12.5}`)
	withActor(c, organizer)
	withParams(c, "id", "evt-1", "user_id", "bob")

	if err := NewEventHandler(stub).UpdatePayment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.amount != 12.5 {
		t.Errorf("expected 12.5, got %v", stub.amount)
	}
}

func TestEventHandler_UpdatePayment_Missing(t *testing.T) {
	c, _ := newTestContext(http.MethodPatch, "/events/evt-1/participants/bob/payment", "")
	withActor(c, organizer)
	withParams(c, "id", "evt-1", "user_id", "bob")

	if err := NewEventHandler(&stubEventService{}).UpdatePayment(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestEventHandler_UpdatePayment_NotANumber(t *testing.T) {
	c, _ := newTestContext(http.MethodPatch, "/events/evt-1/participants/bob/payment?paid_amount=lots", "")
	withActor(c, organizer)
	withParams(c, "id", "evt-1", "user_id", "bob")

	if err := NewEventHandler(&stubEventService{}).UpdatePayment(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestEventHandler_UpdatePayment_NonFinite(t *testing.T) {
	for _, raw := range []string{"NaN", "Inf", "-Inf", "1e400"} {
		c, _ := newTestContext(http.MethodPatch, "/events/evt-1/participants/bob/payment?paid_amount="+raw, "")
		withActor(c, organizer)
		withParams(c, "id", "evt-1", "user_id", "bob")

		stub := &stubEventService{}
		if err := NewEventHandler(stub).UpdatePayment(c); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", raw, err)
		}
		if stub.id != "" {
			t.Fatalf("%s: service must not be called", raw)
		}
	}
}
