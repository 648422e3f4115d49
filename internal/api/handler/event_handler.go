package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
	"github.com/kgconnect/alumni-portal/internal/core/ports"
)

// EventHandler handles HTTP requests for campus events.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

type createEventRequest struct {
	Title       string     `json:"title"        validate:"required"`
	Description string     `json:"description"  validate:"required"`
	EventType   string     `json:"event_type"   validate:"required"`
	Date        time.Time  `json:"date"         validate:"required"`
	EndDate     *time.Time `json:"end_date"`
	Venue       string     `json:"venue"`
	IsVirtual   bool       `json:"is_virtual"`
	MeetingLink string     `json:"meeting_link"`
	Tags        []string   `json:"tags"`
}

type updateEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	EventType   string     `json:"event_type"`
	Date        *time.Time `json:"date"`
	Venue       string     `json:"venue"`
	MeetingLink string     `json:"meeting_link"`
	Tags        []string   `json:"tags"`
}

type updateEventStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// List handles GET /api/events.
//
// @Summary      List all events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Event
// @Failure      401  {object}  errorResponse
// @Router       /api/events [get]
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.service.ListEvents(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Mine handles GET /api/events/mine — events organised by the caller.
//
// @Summary      List own events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Event
// @Failure      401  {object}  errorResponse
// @Router       /api/events/mine [get]
func (h *EventHandler) Mine(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	events, err := h.service.MyEvents(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Create handles POST /api/events.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEventRequest  true  "Event details"
// @Success      201   {object}  domain.Event
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	event, err := h.service.CreateEvent(c.Request().Context(), ports.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		EventType:   req.EventType,
		Date:        req.Date,
		EndDate:     req.EndDate,
		Venue:       req.Venue,
		IsVirtual:   req.IsVirtual,
		MeetingLink: req.MeetingLink,
		Tags:        req.Tags,
		OrganizerID: userID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, event)
}

// Update handles PUT /api/events/:id.
//
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Event id"
// @Param        body  body      updateEventRequest  true  "Fields to patch"
// @Success      200   {object}  domain.Event
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	event, err := h.service.UpdateEvent(c.Request().Context(), c.Param("id"), userID, role, ports.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		EventType:   req.EventType,
		Date:        req.Date,
		Venue:       req.Venue,
		MeetingLink: req.MeetingLink,
		Tags:        req.Tags,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// UpdateStatus handles PATCH /api/events/:id/status (admin only).
//
// @Summary      Update an event's lifecycle status
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Event id"
// @Param        body  body      updateEventStatusRequest  true  "New status"
// @Success      200   {object}  domain.Event
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/events/{id}/status [patch]
func (h *EventHandler) UpdateStatus(c echo.Context) error {
	var req updateEventStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	event, err := h.service.UpdateEventStatus(c.Request().Context(), c.Param("id"), domain.EventStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// Delete handles DELETE /api/events/:id.
//
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Event id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteEvent(c.Request().Context(), c.Param("id"), userID, role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
