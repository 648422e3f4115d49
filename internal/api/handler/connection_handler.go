package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
	"github.com/kgconnect/alumni-portal/internal/core/ports"
)

// ConnectionHandler handles mentorship connection requests.
type ConnectionHandler struct {
	service ports.ConnectionService
}

func NewConnectionHandler(service ports.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{service: service}
}

type requestConnectionRequest struct {
	AlumniID string `json:"alumni_id" validate:"required"`
	Message  string `json:"message"`
}

type respondConnectionRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

// Request handles POST /api/connections (students only).
//
// @Summary      Request a mentorship connection
// @Tags         connections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      requestConnectionRequest  true  "Target alumnus"
// @Success      201   {object}  domain.Connection
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/connections [post]
func (h *ConnectionHandler) Request(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req requestConnectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	conn, err := h.service.RequestConnection(c.Request().Context(), userID, req.AlumniID, req.Message)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, conn)
}

// Mine handles GET /api/connections — connections on either side of the caller.
//
// @Summary      List own connections
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Connection
// @Failure      401  {object}  errorResponse
// @Router       /api/connections [get]
func (h *ConnectionHandler) Mine(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	conns, err := h.service.MyConnections(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, conns)
}

// Respond handles PATCH /api/connections/:id — the targeted alumnus accepts
// or rejects.
//
// @Summary      Respond to a mentorship request
// @Tags         connections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Connection id"
// @Param        body  body      respondConnectionRequest  true  "Decision"
// @Success      200   {object}  domain.Connection
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/connections/{id} [patch]
func (h *ConnectionHandler) Respond(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req respondConnectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	conn, err := h.service.RespondToConnection(c.Request().Context(), c.Param("id"), userID, domain.ConnectionStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, conn)
}

// Stats handles GET /api/connections/stats (admin only).
//
// @Summary      Connection statistics
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.ConnectionStats
// @Failure      403  {object}  errorResponse
// @Router       /api/connections/stats [get]
func (h *ConnectionHandler) Stats(c echo.Context) error {
	stats, err := h.service.ConnectionStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
