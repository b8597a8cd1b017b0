package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clientbook/payments-api/internal/core/domain"
	"github.com/clientbook/payments-api/internal/core/ports"
)

type statsResponse struct {
	TotalClients  int   `json:"total_clients"`
	TotalExpected int64 `json:"total_expected"`
	TotalPaid     int64 `json:"total_paid"`
	Outstanding   int64 `json:"outstanding"`
	OverdueCount  int   `json:"overdue_count"`
}

// StatsHandler handles HTTP requests for aggregate statistics.
type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Get handles GET /v1/stats. The optional as_of parameter (YYYY-MM-DD)
// shifts the reference date; it defaults to today.
//
// @Summary      Aggregate financial status across all clients
// @Tags         stats
// @Produce      json
// @Param        as_of  query     string  false  "Reference date (YYYY-MM-DD)"
// @Success      200    {object}  statsResponse
// @Failure      400    {object}  errorResponse
// @Failure      503    {object}  errorResponse
// @Router       /v1/stats [get]
func (h *StatsHandler) Get(c echo.Context) error {
	asOf := time.Now()
	if raw := c.QueryParam("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return domain.NewValidationError("as_of", "must be a date in YYYY-MM-DD format")
		}
		asOf = parsed
	}

	stats, err := h.service.Compute(c.Request().Context(), asOf)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statsResponse{
		TotalClients:  stats.TotalClients,
		TotalExpected: stats.TotalExpected,
		TotalPaid:     stats.TotalPaid,
		Outstanding:   stats.Outstanding,
		OverdueCount:  stats.OverdueCount,
	})
}
