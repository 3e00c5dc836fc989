package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/newyears/event-organizer/internal/core/domain"
	"github.com/newyears/event-organizer/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User // keyed by ID
	order   []string
	nextID  int
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (string, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return "", domain.ErrUserExists
		}
		if u.Email == user.Email {
			return "", domain.ErrEmailExists
		}
	}
	r.nextID++
	id := fmt.Sprintf("u%03d", r.nextID)
	stored := cloneUser(user)
	stored.ID = id
	r.users[id] = stored
	r.order = append(r.order, id)
	return id, nil
}

func (r *stubUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, id := range r.order {
		if u := r.users[id]; match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id })
}

func (r *stubUserRepo) Update(_ context.Context, id string, patch domain.UserPatch) (int64, error) {
	u, ok := r.users[id]
	if !ok {
		return 0, nil
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	at := patch.UpdatedAt
	u.UpdatedAt = &at
	return 1, nil
}

func (r *stubUserRepo) List(_ context.Context, skip, limit int64) ([]*domain.User, error) {
	out := []*domain.User{}
	for i, id := range r.order {
		if int64(i) < skip {
			continue
		}
		if int64(len(out)) >= limit {
			break
		}
		out = append(out, cloneUser(r.users[id]))
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// In-memory event repository mirroring the Mongo adapter's modified counts.
// ---------------------------------------------------------------------------

type memEventRepo struct {
	events map[string]*domain.Event
	order  []string
	nextID int

	// forceUpdateZero makes Update report zero modified documents, as the
	// store does for a no-op write.
	forceUpdateZero bool
	calls           []string
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{events: make(map[string]*domain.Event)}
}

func cloneEvent(e *domain.Event) *domain.Event {
	clone := *e
	clone.Organizers = slices.Clone(e.Organizers)
	clone.Locations = slices.Clone(e.Locations)
	clone.Images = slices.Clone(e.Images)
	clone.Notes = slices.Clone(e.Notes)
	clone.Participants = make([]domain.Participant, len(e.Participants))
	for i, p := range e.Participants {
		p.Tags = slices.Clone(p.Tags)
		clone.Participants[i] = p
	}
	if e.UpdatedAt != nil {
		at := *e.UpdatedAt
		clone.UpdatedAt = &at
	}
	return &clone
}

func (r *memEventRepo) seed(e *domain.Event) string {
	r.nextID++
	id := fmt.Sprintf("ev%03d", r.nextID)
	stored := cloneEvent(e)
	stored.ID = id
	r.events[id] = stored
	r.order = append(r.order, id)
	return id
}

func (r *memEventRepo) Insert(_ context.Context, e *domain.Event) (string, error) {
	r.calls = append(r.calls, "insert")
	return r.seed(e), nil
}

func (r *memEventRepo) FindByID(_ context.Context, id string) (*domain.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return cloneEvent(e), nil
}

func (r *memEventRepo) Find(_ context.Context, f ports.EventFilter, skip, limit int64) ([]*domain.Event, error) {
	out := []*domain.Event{}
	var seen int64
	for _, id := range r.order {
		e := r.events[id]
		if f.Organizer != "" && !slices.Contains(e.Organizers, f.Organizer) {
			continue
		}
		if f.Location != "" && !slices.Contains(e.Locations, f.Location) {
			continue
		}
		seen++
		if seen <= skip {
			continue
		}
		if int64(len(out)) >= limit {
			break
		}
		out = append(out, cloneEvent(e))
	}
	return out, nil
}

func (r *memEventRepo) Update(_ context.Context, id string, p domain.EventPatch) (int64, error) {
	r.calls = append(r.calls, "update")
	e, ok := r.events[id]
	if !ok || r.forceUpdateZero {
		return 0, nil
	}
	if p.Organizers != nil {
		e.Organizers = slices.Clone(*p.Organizers)
	}
	if p.Locations != nil {
		e.Locations = slices.Clone(*p.Locations)
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Schedule != nil {
		e.Schedule = *p.Schedule
	}
	if p.Images != nil {
		e.Images = slices.Clone(*p.Images)
	}
	if p.Notes != nil {
		e.Notes = slices.Clone(*p.Notes)
	}
	if p.Participants != nil {
		e.Participants = slices.Clone(*p.Participants)
	}
	at := p.UpdatedAt
	e.UpdatedAt = &at
	return 1, nil
}

func (r *memEventRepo) Delete(_ context.Context, id string) (int64, error) {
	r.calls = append(r.calls, "delete")
	if _, ok := r.events[id]; !ok {
		return 0, nil
	}
	delete(r.events, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	return 1, nil
}

func (r *memEventRepo) PushParticipant(_ context.Context, id string, p domain.Participant, at time.Time) (int64, error) {
	r.calls = append(r.calls, "push")
	e, ok := r.events[id]
	if !ok {
		return 0, nil
	}
	e.Participants = append(e.Participants, p)
	e.UpdatedAt = &at
	return 1, nil
}

func (r *memEventRepo) PullParticipant(_ context.Context, id, userID string, at time.Time) (int64, error) {
	r.calls = append(r.calls, "pull")
	e, ok := r.events[id]
	if !ok {
		return 0, nil
	}
	before := len(e.Participants)
	e.Participants = slices.DeleteFunc(e.Participants, func(p domain.Participant) bool { return p.UserID == userID })
	if len(e.Participants) == before {
		return 0, nil
	}
	e.UpdatedAt = &at
	return 1, nil
}

func (r *memEventRepo) SetParticipantPaid(_ context.Context, id, userID string, amount float64, at time.Time) (int64, error) {
	r.calls = append(r.calls, "set_paid")
	e, ok := r.events[id]
	if !ok {
		return 0, nil
	}
	for i := range e.Participants {
		if e.Participants[i].UserID == userID {
			e.Participants[i].PaidAmount = amount
			e.UpdatedAt = &at
			return 1, nil
		}
	}
	return 0, nil
}

type recordingAudit struct {
	entries []domain.AuditEntry
}

func (a *recordingAudit) Record(e domain.AuditEntry) {
	a.entries = append(a.entries, e)
}

// stubHasher keeps tests fast; bcrypt itself is covered in the security package.
type stubHasher struct{}

func (stubHasher) Hash(secret string) (string, error) { return "hashed:" + secret, nil }
func (stubHasher) Verify(secret, hash string) bool { return hash == "hashed:"+secret }

// countingHasher wraps stubHasher and records every Verify call.
type countingHasher struct {
	stubHasher
	hashes   int
	verified []string
}

func (h *countingHasher) Hash(secret string) (string, error) {
	h.hashes++
	return h.stubHasher.Hash(secret)
}

func (h *countingHasher) Verify(secret, hash string) bool {
	h.verified = append(h.verified, hash)
	return h.stubHasher.Verify(secret, hash)
}
