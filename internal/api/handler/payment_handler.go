package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kgconnect/alumni-portal/internal/api/metrics"
	"github.com/kgconnect/alumni-portal/internal/core/ports"
)

// PaymentDispatcher is the interface the handler uses to enqueue gateway
// events for asynchronous processing.
type PaymentDispatcher interface {
	Enqueue(event ports.PaymentEventInput)
}

// PaymentHandler ingests payment gateway webhook notifications.
type PaymentHandler struct {
	dispatcher PaymentDispatcher
}

// NewPaymentHandler creates a PaymentHandler backed by the given dispatcher.
func NewPaymentHandler(dispatcher PaymentDispatcher) *PaymentHandler {
	return &PaymentHandler{dispatcher: dispatcher}
}

type paymentEventRequest struct {
	TransactionID string    `json:"transaction_id" validate:"required"`
	Status        string    `json:"status"         validate:"required,oneof=completed failed refunded"`
	Timestamp     time.Time `json:"timestamp"      validate:"required"`
	Source        string    `json:"source"         validate:"required"`
}

// Receive handles POST /api/payments/events — enqueues one gateway event,
// returns 202. Ordering per transaction is guaranteed by the dispatcher.
//
// @Summary      Ingest a payment gateway event
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      paymentEventRequest  true  "Gateway event"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/payments/events [post]
func (h *PaymentHandler) Receive(c echo.Context) error {
	var req paymentEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	metrics.PaymentEventsReceivedTotal.WithLabelValues(req.Status, req.Source).Inc()

	h.dispatcher.Enqueue(ports.PaymentEventInput{
		TransactionID: req.TransactionID,
		Status:        req.Status,
		Timestamp:     req.Timestamp,
		Source:        req.Source,
	})
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "event accepted"})
}
