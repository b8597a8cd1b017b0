package ports

import (
	"context"

	"github.com/clientbook/payments-api/internal/core/domain"
)

// SetPaymentStateInput carries the parameters of a payment toggle.
// Notes distinguishes three caller intents: nil preserves the stored notes,
// a pointer to "" clears them, any other value replaces them.
type SetPaymentStateInput struct {
	ClientID string
	Month    int
	Year     int
	Paid     bool
	Notes    *string
}

// PaymentService defines use-case operations for payments.
type PaymentService interface {
	// SetPaymentState creates or updates the single payment record for
	// (client, month, year). Repeated identical calls are idempotent.
	SetPaymentState(ctx context.Context, in SetPaymentStateInput) (*domain.Payment, error)
	ListForClient(ctx context.Context, clientID string) ([]*domain.Payment, error)
}
