package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kgconnect/alumni-portal/internal/core/ports"
)

// DonationHandler handles donation pledges and listings.
type DonationHandler struct {
	service ports.DonationService
}

func NewDonationHandler(service ports.DonationService) *DonationHandler {
	return &DonationHandler{service: service}
}

type createDonationRequest struct {
	Amount        float64 `json:"amount"         validate:"required,gt=0"`
	Currency      string  `json:"currency"`
	Purpose       string  `json:"purpose"`
	Message       string  `json:"message"`
	PaymentMethod string  `json:"payment_method"`
	TransactionID string  `json:"transaction_id" validate:"required"`
}

// Create handles POST /api/donations (alumni only). The donation starts
// pending; gateway webhooks settle it asynchronously.
//
// @Summary      Pledge a donation
// @Tags         donations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDonationRequest  true  "Donation details"
// @Success      201   {object}  domain.Donation
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/donations [post]
func (h *DonationHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createDonationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	donation, err := h.service.CreateDonation(c.Request().Context(), ports.CreateDonationInput{
		DonorID:       userID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Purpose:       req.Purpose,
		Message:       req.Message,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, donation)
}

// Mine handles GET /api/donations — the caller's own donations, newest first.
//
// @Summary      List own donations
// @Tags         donations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Donation
// @Failure      401  {object}  errorResponse
// @Router       /api/donations [get]
func (h *DonationHandler) Mine(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	donations, err := h.service.MyDonations(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, donations)
}

// All handles GET /api/donations/all (admin only).
//
// @Summary      List all donations
// @Tags         donations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Donation
// @Failure      403  {object}  errorResponse
// @Router       /api/donations/all [get]
func (h *DonationHandler) All(c echo.Context) error {
	donations, err := h.service.AllDonations(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, donations)
}
