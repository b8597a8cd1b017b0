package handler

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clientbook/payments-api/internal/api/metrics"
	"github.com/clientbook/payments-api/internal/core/ports"
)

// ExportHandler serves the full payment ledger as a CSV download.
type ExportHandler struct {
	service ports.ExportService
}

func NewExportHandler(service ports.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Download handles GET /v1/export. The CSV is built in memory before the
// response starts, so store failures still surface as proper error statuses.
//
// @Summary      Export all client payments as CSV
// @Tags         export
// @Produce      text/csv
// @Success      200
// @Failure      503  {object}  errorResponse
// @Router       /v1/export [get]
func (h *ExportHandler) Download(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.service.WriteCSV(c.Request().Context(), &buf); err != nil {
		return err
	}

	metrics.ExportsTotal.Inc()
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="client-payments.csv"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
