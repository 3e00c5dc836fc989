package handler

import "time"

type scheduleRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndDate   string `json:"end_date"`
	EndTime   string `json:"end_time"`
}

type participantRequest struct {
	UserID     string   `json:"user_id"     validate:"required"`
	Tags       []string `json:"tags"`
	DuePayment float64  `json:"due_payment" validate:"gte=0"`
	PaidAmount float64  `json:"paid_amount"`
}

type createEventRequest struct {
	Organizers   []string             `json:"organizers"`
	Locations    []string             `json:"locations"    validate:"required,min=1"`
	Description  string               `json:"description"`
	Schedule     scheduleRequest      `json:"schedule"     validate:"required"`
	Images       []string             `json:"images"`
	Notes        []string             `json:"notes"`
	Participants []participantRequest `json:"participants" validate:"dive"`
}

// updateEventRequest is a partial update. Absent fields are left unchanged.
type updateEventRequest struct {
	Organizers   *[]string             `json:"organizers"`
	Locations    *[]string             `json:"locations"`
	Description  *string               `json:"description"`
	Schedule     *scheduleRequest      `json:"schedule"`
	Images       *[]string             `json:"images"`
	Notes        *[]string             `json:"notes"`
	Participants *[]participantRequest `json:"participants"`
}

type paymentRequest struct {
	PaidAmount *float64 `json:"paid_amount"`
}

type scheduleResponse struct {
	StartDate string `json:"start_date"`
	StartTime string `json:"start_time"`
	EndDate   string `json:"end_date,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}

type participantResponse struct {
	UserID     string   `json:"user_id"`
	Tags       []string `json:"tags"`
	DuePayment float64  `json:"due_payment"`
	PaidAmount float64  `json:"paid_amount"`
}

type eventResponse struct {
	ID           string                `json:"id"`
	Organizers   []string              `json:"organizers"`
	Locations    []string              `json:"locations"`
	Description  string                `json:"description"`
	Schedule     scheduleResponse      `json:"schedule"`
	Images       []string              `json:"images"`
	Notes        []string              `json:"notes"`
	Participants []participantResponse `json:"participants"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    *time.Time            `json:"updated_at,omitempty"`
}
