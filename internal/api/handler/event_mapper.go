package handler

import (
	"github.com/newyears/event-organizer/internal/core/domain"
)

func toSchedule(r scheduleRequest) domain.Schedule {
	return domain.Schedule{
		StartDate: r.StartDate,
		StartTime: r.StartTime,
		EndDate:   r.EndDate,
		EndTime:   r.EndTime,
	}
}

func toParticipant(r participantRequest) domain.Participant {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.Participant{
		UserID:     r.UserID,
		Tags:       tags,
		DuePayment: r.DuePayment,
		PaidAmount: r.PaidAmount,
	}
}

func toParticipants(rs []participantRequest) []domain.Participant {
	out := make([]domain.Participant, 0, len(rs))
	for _, r := range rs {
		out = append(out, toParticipant(r))
	}
	return out
}

func toEventDraft(r createEventRequest) domain.EventDraft {
	return domain.EventDraft{
		Organizers:   r.Organizers,
		Locations:    r.Locations,
		Description:  r.Description,
		Schedule:     toSchedule(r.Schedule),
		Images:       r.Images,
		Notes:        r.Notes,
		Participants: toParticipants(r.Participants),
	}
}

func toEventPatch(r updateEventRequest) domain.EventPatch {
	patch := domain.EventPatch{
		Organizers:  r.Organizers,
		Locations:   r.Locations,
		Description: r.Description,
		Images:      r.Images,
		Notes:       r.Notes,
	}
	if r.Schedule != nil {
		s := toSchedule(*r.Schedule)
		patch.Schedule = &s
	}
	if r.Participants != nil {
		ps := toParticipants(*r.Participants)
		patch.Participants = &ps
	}
	return patch
}

func toEventResponse(e *domain.Event) eventResponse {
	participants := make([]participantResponse, 0, len(e.Participants))
	for _, p := range e.Participants {
		participants = append(participants, participantResponse{
			UserID:     p.UserID,
			Tags:       nonNilStrings(p.Tags),
			DuePayment: p.DuePayment,
			PaidAmount: p.PaidAmount,
		})
	}
	return eventResponse{
		ID:          e.ID,
		Organizers:  nonNilStrings(e.Organizers),
		Locations:   nonNilStrings(e.Locations),
		Description: e.Description,
		Schedule: scheduleResponse{
			StartDate: e.Schedule.StartDate,
			StartTime: e.Schedule.StartTime,
			EndDate:   e.Schedule.EndDate,
			EndTime:   e.Schedule.EndTime,
		},
		Images:       nonNilStrings(e.Images),
		Notes:        nonNilStrings(e.Notes),
		Participants: participants,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toEventResponses(events []*domain.Event) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	return out
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
