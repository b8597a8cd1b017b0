package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clientbook/payments-api/internal/api/metrics"
	"github.com/clientbook/payments-api/internal/core/domain"
	"github.com/clientbook/payments-api/internal/core/ports"
)

// PaymentHandler handles HTTP requests for payment operations.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// Toggle handles POST /v1/payments/toggle — creates or updates the single
// payment record for (client, month, year).
//
// @Summary      Set the paid state for one client month
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      togglePaymentRequest  true  "Toggle parameters"
// @Success      200   {object}  paymentResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/payments/toggle [post]
func (h *PaymentHandler) Toggle(c echo.Context) error {
	var req togglePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payment, err := h.service.SetPaymentState(c.Request().Context(), ports.SetPaymentStateInput{
		ClientID: req.ClientID,
		Month:    *req.Month,
		Year:     req.Year,
		Paid:     *req.Paid,
		Notes:    req.Notes,
	})
	if err != nil {
		return err
	}

	metrics.TogglesTotal.WithLabelValues(strconv.FormatBool(payment.Paid)).Inc()
	return c.JSON(http.StatusOK, toPaymentResponse(payment))
}

// ListForClient handles GET /v1/clients/:id/payments.
//
// @Summary      List all payment records of one client
// @Tags         payments
// @Produce      json
// @Param        id  path      string  true  "Client id"
// @Success      200  {array}   paymentResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/clients/{id}/payments [get]
func (h *PaymentHandler) ListForClient(c echo.Context) error {
	payments, err := h.service.ListForClient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	out := make([]paymentResponse, len(payments))
	for i, p := range payments {
		out[i] = toPaymentResponse(p)
	}
	return c.JSON(http.StatusOK, out)
}

func toPaymentResponse(p *domain.Payment) paymentResponse {
	return paymentResponse{
		ID:       p.ID,
		ClientID: p.ClientID,
		Month:    p.Month,
		Year:     p.Year,
		Paid:     p.Paid,
		Notes:    p.Notes,
	}
}
