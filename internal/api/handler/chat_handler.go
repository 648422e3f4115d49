package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kgconnect/alumni-portal/internal/api/metrics"
	"github.com/kgconnect/alumni-portal/internal/core/ports"
)

// ChatHandler handles the rule-based portal assistant.
type ChatHandler struct {
	service ports.ChatService
}

func NewChatHandler(service ports.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

type chatMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// Send handles POST /api/chat.
//
// @Summary      Send a message to the assistant
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      chatMessageRequest  true  "Message"
// @Success      200   {object}  domain.ChatMessage
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/chat [post]
func (h *ChatHandler) Send(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req chatMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	msg, err := h.service.SendMessage(c.Request().Context(), userID, req.Message)
	if err != nil {
		return err
	}

	metrics.ChatMessagesTotal.WithLabelValues(string(msg.Category)).Inc()
	return c.JSON(http.StatusOK, msg)
}

// History handles GET /api/chat/history?limit=N.
//
// @Summary      Get assistant conversation history
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum exchanges to return"
// @Success      200    {array}   domain.ChatMessage
// @Failure      401    {object}  errorResponse
// @Router       /api/chat/history [get]
func (h *ChatHandler) History(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	msgs, err := h.service.History(c.Request().Context(), userID, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

// Clear handles DELETE /api/chat/history.
//
// @Summary      Clear assistant conversation history
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /api/chat/history [delete]
func (h *ChatHandler) Clear(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.service.ClearHistory(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
