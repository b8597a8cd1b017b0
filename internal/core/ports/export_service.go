package ports

import (
	"context"
	"io"
)

// ExportService renders the full payment ledger as CSV, one row per
// (client, payment) pair.
type ExportService interface {
	WriteCSV(ctx context.Context, w io.Writer) error
}
