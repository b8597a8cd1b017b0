package handler

import (
	"encoding/csv"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clientbook/payments-api/internal/api/metrics"
	"github.com/clientbook/payments-api/internal/core/ports"
)

// importColumns maps the expected CSV header names (lower-cased) to row fields.
const (
	colName   = "name"
	colAmount = "monthly amount"
	colPhone  = "phone"
	colEmail  = "email"
)

// ImportHandler ingests a CSV of client records.
type ImportHandler struct {
	service ports.ClientService
}

func NewImportHandler(service ports.ClientService) *ImportHandler {
	return &ImportHandler{service: service}
}

// Upload handles POST /v1/import — a multipart form with a "file" field
// holding a CSV (header: Name, Monthly Amount, Phone, Email). Row failures
// are isolated; the response partitions imported names from per-row errors.
//
// @Summary      Bulk import clients from CSV
// @Tags         import
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV file"
// @Success      200   {object}  ports.ImportResult
// @Failure      400   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/import [post]
func (h *ImportHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file upload")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file upload")
	}
	defer file.Close()

	rows, err := parseImportCSV(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(rows) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no data rows in file")
	}

	result, err := h.service.BulkImport(c.Request().Context(), rows)
	if err != nil {
		return err
	}

	metrics.ClientsCreatedTotal.WithLabelValues("import").Add(float64(len(result.Imported)))
	metrics.ImportRowsTotal.WithLabelValues("imported").Add(float64(len(result.Imported)))
	metrics.ImportRowsTotal.WithLabelValues("rejected").Add(float64(len(result.Errors)))
	return c.JSON(http.StatusOK, result)
}

// parseImportCSV reads the upload into import rows. The header row decides
// column positions; unknown columns are ignored. A malformed amount is left
// at zero so the row is rejected individually by the service instead of
// aborting the whole batch.
func parseImportCSV(r io.Reader) ([]ports.ImportRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.New("missing CSV header row")
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols[colName]; !ok {
		return nil, errors.New("missing required column: Name")
	}
	if _, ok := cols[colAmount]; !ok {
		return nil, errors.New("missing required column: Monthly Amount")
	}

	var rows []ports.ImportRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.New("malformed CSV: " + err.Error())
		}

		row := ports.ImportRow{
			Name:  field(record, cols, colName),
			Phone: field(record, cols, colPhone),
			Email: field(record, cols, colEmail),
		}
		if raw := field(record, cols, colAmount); raw != "" {
			row.MonthlyAmount, _ = strconv.ParseInt(raw, 10, 64)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
