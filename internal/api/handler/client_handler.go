package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clientbook/payments-api/internal/api/metrics"
	"github.com/clientbook/payments-api/internal/core/domain"
	"github.com/clientbook/payments-api/internal/core/ports"
)

// ClientHandler handles HTTP requests for client operations.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// List handles GET /v1/clients.
//
// @Summary      Query clients with filters and pagination
// @Tags         clients
// @Produce      json
// @Param        search           query     string  false  "Substring match on name, phone, or email"
// @Param        month            query     int     false  "Zero-based month for the paid filter (defaults to current)"
// @Param        year             query     int     false  "Year for the paid/outstanding filters (defaults to current)"
// @Param        paid             query     string  false  "any, paid, or unpaid"
// @Param        outstanding_min  query     int     false  "Minimum remaining yearly obligation"
// @Param        page             query     int     false  "1-based page"
// @Param        page_size        query     int     false  "Items per page"
// @Success      200              {object}  listClientsResponse
// @Failure      400              {object}  errorResponse
// @Failure      503              {object}  errorResponse
// @Router       /v1/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	start := time.Now()

	in := ports.QueryClientsInput{
		Search: c.QueryParam("search"),
		Paid:   c.QueryParam("paid"),
		Month:  -1,
	}

	var err error
	if in.Month, err = intQueryParam(c, "month", -1); err != nil {
		return err
	}
	if in.Year, err = intQueryParam(c, "year", 0); err != nil {
		return err
	}
	outstanding, err := intQueryParam(c, "outstanding_min", 0)
	if err != nil {
		return err
	}
	in.OutstandingMin = int64(outstanding)
	if in.Page, err = positiveIntQueryParam(c, "page"); err != nil {
		return err
	}
	if in.PageSize, err = positiveIntQueryParam(c, "page_size"); err != nil {
		return err
	}

	result, err := h.service.Query(c.Request().Context(), in)
	if err != nil {
		return err
	}

	metrics.QueryDuration.Observe(time.Since(start).Seconds())
	return c.JSON(http.StatusOK, toListClientsResponse(result))
}

// Create handles POST /v1/clients.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body      clientRequest  true  "Client details"
// @Success      201   {object}  clientResponse
// @Failure      400   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.service.Create(c.Request().Context(), toClientInput(req))
	if err != nil {
		return err
	}

	metrics.ClientsCreatedTotal.WithLabelValues("api").Inc()
	return c.JSON(http.StatusCreated, toClientResponse(client))
}

// Get handles GET /v1/clients/:id.
//
// @Summary      Fetch a single client
// @Tags         clients
// @Produce      json
// @Param        id  path      string  true  "Client id"
// @Success      200  {object}  clientResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	client, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(client))
}

// Update handles PATCH /v1/clients/:id.
//
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Client id"
// @Param        body  body      clientRequest  true  "Client details"
// @Success      200   {object}  clientResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/clients/{id} [patch]
func (h *ClientHandler) Update(c echo.Context) error {
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.service.Update(c.Request().Context(), c.Param("id"), toClientInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(client))
}

// Delete handles DELETE /v1/clients/:id. Removing a client also removes all
// of its payment records.
//
// @Summary      Delete a client and its payments
// @Tags         clients
// @Param        id  path  string  true  "Client id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.ClientsDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// --- Query param helpers ---

// intQueryParam parses an optional integer query parameter, returning def
// when absent. A non-numeric value is a field-attributed validation error.
func intQueryParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return v, nil
}

// positiveIntQueryParam is intQueryParam for parameters that must be >= 1
// when supplied. Absent values return 0 so the service applies its default;
// explicit zero or negative values are rejected, not clamped.
func positiveIntQueryParam(c echo.Context, name string) (int, error) {
	v, err := intQueryParam(c, name, 0)
	if err != nil {
		return 0, err
	}
	if c.QueryParam(name) != "" && v < 1 {
		return 0, domain.NewValidationError(name, "must be at least 1")
	}
	return v, nil
}

// --- Mappers ---

func toClientInput(req clientRequest) ports.ClientInput {
	return ports.ClientInput{
		Name:          req.Name,
		MonthlyAmount: req.MonthlyAmount,
		Phone:         req.Phone,
		Email:         req.Email,
	}
}

func toClientResponse(c *domain.Client) clientResponse {
	return clientResponse{
		ID:            c.ID,
		Name:          c.Name,
		MonthlyAmount: c.MonthlyAmount,
		Phone:         c.Phone,
		Email:         c.Email,
	}
}

func toListClientsResponse(r *ports.QueryClientsResult) listClientsResponse {
	items := make([]clientResponse, len(r.Clients))
	for i, c := range r.Clients {
		items[i] = toClientResponse(c)
	}
	return listClientsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			PageSize:   r.PageSize,
			TotalPages: r.TotalPages,
		},
	}
}
