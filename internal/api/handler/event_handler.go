package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/newyears/event-organizer/internal/core/domain"
	"github.com/newyears/event-organizer/internal/core/ports"
)

// EventHandler serves the event lifecycle endpoints.
type EventHandler struct {
	events ports.EventService
}

func NewEventHandler(events ports.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// Create handles POST /events. The caller is added to the organizers.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEventRequest  true  "Event"
// @Success      201   {object}  eventResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	event, err := h.events.Create(c.Request().Context(), actor, toEventDraft(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toEventResponse(event))
}

// Get handles GET /events/:id.
//
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  eventResponse
// @Failure      404  {object}  errorResponse
// @Router       /events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.events.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(event))
}

// List handles GET /events. At most one of organizer and location may be set.
//
// @Summary      List events
// @Tags         events
// @Produce      json
// @Param        organizer  query     string  false  "Organizer username"
// @Param        location   query     string  false  "Location"
// @Param        skip       query     int     false  "Entries to skip"
// @Param        limit      query     int     false  "Page size (max 100)"
// @Success      200        {array}   eventResponse
// @Failure      400        {object}  errorResponse
// @Router       /events [get]
func (h *EventHandler) List(c echo.Context) error {
	skip, limit, err := page(c)
	if err != nil {
		return err
	}

	events, err := h.events.List(c.Request().Context(), ports.ListEventsInput{
		Filter: ports.EventFilter{
			Organizer: c.QueryParam("organizer"),
			Location:  c.QueryParam("location"),
		},
		Skip:  skip,
		Limit: limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponses(events))
}

// Update handles PATCH /events/:id.
//
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Event ID"
// @Param        body  body      updateEventRequest  true  "Fields to change"
// @Success      200   {object}  eventResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /events/{id} [patch]
func (h *EventHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	event, err := h.events.Update(c.Request().Context(), actor, c.Param("id"), toEventPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(event))
}

// Delete handles DELETE /events/:id.
//
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.events.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Event deleted successfully"})
}

// AddParticipant handles POST /events/:id/participants.
//
// @Summary      Add a participant
// @Tags         participants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Event ID"
// @Param        body  body      participantRequest  true  "Participant"
// @Success      200   {object}  eventResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /events/{id}/participants [post]
func (h *EventHandler) AddParticipant(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req participantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	event, err := h.events.AddParticipant(c.Request().Context(), actor, c.Param("id"), toParticipant(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(event))
}

// RemoveParticipant handles DELETE /events/:id/participants/:user_id.
//
// @Summary      Remove a participant
// @Tags         participants
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Event ID"
// @Param        user_id  path      string  true  "Participant user ID"
// @Success      200      {object}  eventResponse
// @Failure      401      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /events/{id}/participants/{user_id} [delete]
func (h *EventHandler) RemoveParticipant(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	event, err := h.events.RemoveParticipant(c.Request().Context(), actor, c.Param("id"), c.Param("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(event))
}

// UpdatePayment handles PATCH /events/:id/participants/:user_id/payment.
// paid_amount is read from the query string, or from the JSON body when the
// query parameter is absent.
//
// @Summary      Record a participant payment
// @Tags         participants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id           path      string          true   "Event ID"
// @Param        user_id      path      string          true   "Participant user ID"
// @Param        paid_amount  query     number          false  "Amount paid"
// @Param        body         body      paymentRequest  false  "Amount paid"
// @Success      200          {object}  eventResponse
// @Failure      400          {object}  errorResponse
// @Failure      401          {object}  errorResponse
// @Failure      404          {object}  errorResponse
// @Router       /events/{id}/participants/{user_id}/payment [patch]
func (h *EventHandler) UpdatePayment(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	amount, err := paidAmount(c)
	if err != nil {
		return err
	}

	event, err := h.events.UpdateParticipantPayment(c.Request().Context(), actor, c.Param("id"), c.Param("user_id"), amount)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(event))
}

func paidAmount(c echo.Context) (float64, error) {
	if raw := c.QueryParam("paid_amount"); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
			return 0, domain.Invalid("paid_amount must be a finite number")
		}
		return amount, nil
	}

	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.PaidAmount == nil {
		return 0, domain.Invalid("paid_amount is required")
	}
	return *req.PaidAmount, nil
}
