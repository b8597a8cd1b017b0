package ports

import (
	"context"

	"github.com/clientbook/payments-api/internal/core/domain"
)

// UpsertPaymentParams carries the fields applied by an atomic payment upsert.
// Notes is tri-state: nil leaves stored notes untouched, a pointer to the
// empty string clears them, any other value replaces them.
type UpsertPaymentParams struct {
	ClientID string
	Month    int
	Year     int
	Paid     bool
	Notes    *string
}

// PaymentRepository defines persistence operations for payments.
//
// Upsert must be atomic with respect to concurrent calls for the same
// (client, month, year) key: the store enforces uniqueness on that tuple, so
// two racing upserts converge on a single record.
type PaymentRepository interface {
	Upsert(ctx context.Context, p UpsertPaymentParams) (*domain.Payment, error)
	Get(ctx context.Context, clientID string, month, year int) (*domain.Payment, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Payment, error)
	// ListByYear returns every payment of every client for one calendar
	// year in a single scan. The filter engine and the aggregator group
	// the result by client id; neither issues per-client queries.
	ListByYear(ctx context.Context, year int) ([]*domain.Payment, error)
	ListAll(ctx context.Context) ([]*domain.Payment, error)
	DeleteByClient(ctx context.Context, clientID string) error
}
