package ports

import (
	"context"

	"github.com/clientbook/payments-api/internal/core/domain"
)

// Paid filter values accepted by QueryClientsInput.
const (
	PaidFilterAny    = "any"
	PaidFilterPaid   = "paid"
	PaidFilterUnpaid = "unpaid"
)

// ClientInput carries the caller-supplied fields for creating or updating
// a client.
type ClientInput struct {
	Name          string
	MonthlyAmount int64
	Phone         string
	Email         string
}

// QueryClientsInput carries all filter criteria for the client query engine.
// Every criterion is independently optional; zero values mean "not supplied".
type QueryClientsInput struct {
	Search string
	// Month and Year scope the paid filter. When the paid or outstanding
	// filter is active and either is unset (Month < 0 or Year == 0), the
	// current calendar month/year is used.
	Month int
	Year  int
	// Paid is one of "", "any", "paid", "unpaid".
	Paid string
	// OutstandingMin keeps only clients whose remaining yearly obligation,
	// (12 - paidCount(year)) * monthly amount, is >= this threshold.
	// Zero disables the filter.
	OutstandingMin int64
	// Page is 1-based; 0 means page 1. PageSize 0 means the service default.
	Page     int
	PageSize int
}

// QueryClientsResult is the paginated outcome of a client query.
type QueryClientsResult struct {
	Clients    []*domain.Client
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// ImportRow is one parsed row of a bulk client import.
type ImportRow struct {
	Name          string
	MonthlyAmount int64
	Phone         string
	Email         string
}

// ImportRowError attributes a failure to a single import row.
// Row is the 1-based position in the uploaded data (excluding the header).
type ImportRowError struct {
	Row int    `json:"row"`
	Err string `json:"error"`
}

// ImportResult partitions a bulk import into successes and per-row errors.
type ImportResult struct {
	Imported []string         `json:"imported"`
	Errors   []ImportRowError `json:"errors"`
}

// ClientService defines use-case operations for clients.
type ClientService interface {
	Create(ctx context.Context, in ClientInput) (*domain.Client, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	Update(ctx context.Context, id string, in ClientInput) (*domain.Client, error)
	// Delete removes a client and cascades to all of its payments.
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, in QueryClientsInput) (*QueryClientsResult, error)
	// BulkImport creates one client per row, isolating failures: an invalid
	// row is reported in the result and never aborts the remaining rows.
	BulkImport(ctx context.Context, rows []ImportRow) (*ImportResult, error)
}
