package domain

import (
	"math"
	"slices"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Schedule holds civil dates and wall-clock times as entered by organizers.
// Dates use DateLayout and times use TimeLayout.
type Schedule struct {
	StartDate string `json:"start_date"`
	StartTime string `json:"start_time"`
	EndDate   string `json:"end_date,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}

// Validate checks the layouts and that the end date does not precede the start date.
func (s Schedule) Validate() error {
	start, err := time.Parse(DateLayout, s.StartDate)
	if err != nil {
		return Invalid("start_date must be YYYY-MM-DD")
	}
	if _, err := time.Parse(TimeLayout, s.StartTime); err != nil {
		return Invalid("start_time must be HH:MM")
	}
	if s.EndDate != "" {
		end, err := time.Parse(DateLayout, s.EndDate)
		if err != nil {
			return Invalid("end_date must be YYYY-MM-DD")
		}
		if end.Before(start) {
			return Invalid("end_date %s precedes start_date %s", s.EndDate, s.StartDate)
		}
	}
	if s.EndTime != "" {
		if _, err := time.Parse(TimeLayout, s.EndTime); err != nil {
			return Invalid("end_time must be HH:MM")
		}
	}
	return nil
}

// Participant is a roster entry embedded in an Event, addressed by UserID.
type Participant struct {
	UserID     string   `json:"user_id"`
	Tags       []string `json:"tags"`
	DuePayment float64  `json:"due_payment"`
	PaidAmount float64  `json:"paid_amount"`
}

func (p Participant) Validate() error {
	if strings.TrimSpace(p.UserID) == "" {
		return Invalid("participant user_id is required")
	}
	if !finite(p.DuePayment) {
		return Invalid("due_payment must be a finite number")
	}
	if p.DuePayment < 0 {
		return Invalid("due_payment cannot be negative")
	}
	return ValidatePaidAmount(p.PaidAmount)
}

// ValidatePaidAmount accepts any finite, non-negative amount. Overpayment is
// allowed.
func ValidatePaidAmount(amount float64) error {
	if !finite(amount) {
		return Invalid("paid_amount must be a finite number")
	}
	if amount < 0 {
		return ErrNegativePayment
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Event is the aggregate owned by the event lifecycle service.
type Event struct {
	ID           string        `json:"id"`
	Organizers   []string      `json:"organizers"`
	Locations    []string      `json:"locations"`
	Description  string        `json:"description"`
	Schedule     Schedule      `json:"schedule"`
	Images       []string      `json:"images"`
	Notes        []string      `json:"notes"`
	Participants []Participant `json:"participants"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    *time.Time    `json:"updated_at,omitempty"`
}

// IsOrganizer reports whether username is a recorded organizer of e.
func (e *Event) IsOrganizer(username string) bool {
	return slices.Contains(e.Organizers, username)
}

// Participant returns the first roster entry for userID.
func (e *Event) Participant(userID string) (Participant, bool) {
	for _, p := range e.Participants {
		if p.UserID == userID {
			return p, true
		}
	}
	return Participant{}, false
}

// EventDraft carries the caller-supplied fields of a new event.
type EventDraft struct {
	Organizers   []string
	Locations    []string
	Description  string
	Schedule     Schedule
	Images       []string
	Notes        []string
	Participants []Participant
}

// NewEvent validates a draft and returns an unsaved event. The creator is
// appended to the organizers when absent.
func NewEvent(d EventDraft, creator string, now time.Time) (*Event, error) {
	organizers := normalizeSet(d.Organizers)
	if creator != "" && !slices.Contains(organizers, creator) {
		organizers = append(organizers, creator)
	}
	if len(organizers) == 0 {
		return nil, Invalid("at least one organizer is required")
	}
	locations := normalizeSet(d.Locations)
	if len(locations) == 0 {
		return nil, Invalid("at least one location is required")
	}
	if err := d.Schedule.Validate(); err != nil {
		return nil, err
	}
	for _, p := range d.Participants {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	return &Event{
		Organizers:   organizers,
		Locations:    locations,
		Description:  d.Description,
		Schedule:     d.Schedule,
		Images:       nonNil(d.Images),
		Notes:        nonNil(d.Notes),
		Participants: nonNilParticipants(d.Participants),
		CreatedAt:    now.UTC(),
	}, nil
}

// EventPatch is a partial update. Nil fields are left untouched.
type EventPatch struct {
	Organizers   *[]string
	Locations    *[]string
	Description  *string
	Schedule     *Schedule
	Images       *[]string
	Notes        *[]string
	Participants *[]Participant
	UpdatedAt    time.Time
}

func (p EventPatch) Empty() bool {
	return p.Organizers == nil && p.Locations == nil && p.Description == nil &&
		p.Schedule == nil && p.Images == nil && p.Notes == nil && p.Participants == nil
}

// Validate applies the same invariants as NewEvent to the fields present.
func (p *EventPatch) Validate() error {
	if p.Organizers != nil {
		organizers := normalizeSet(*p.Organizers)
		if len(organizers) == 0 {
			return Invalid("at least one organizer is required")
		}
		p.Organizers = &organizers
	}
	if p.Locations != nil {
		locations := normalizeSet(*p.Locations)
		if len(locations) == 0 {
			return Invalid("at least one location is required")
		}
		p.Locations = &locations
	}
	if p.Schedule != nil {
		if err := p.Schedule.Validate(); err != nil {
			return err
		}
	}
	if p.Participants != nil {
		for _, part := range *p.Participants {
			if err := part.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// normalizeSet trims entries, drops blanks, and removes duplicates keeping
// first-seen order.
func normalizeSet(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func nonNilParticipants(in []Participant) []Participant {
	if in == nil {
		return []Participant{}
	}
	for i := range in {
		in[i].Tags = nonNil(in[i].Tags)
	}
	return in
}
