package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/clientbook/payments-api/internal/core/domain"
	"github.com/clientbook/payments-api/internal/core/ports"
)

type PaymentService struct {
	clients  ports.ClientRepository
	payments ports.PaymentRepository
	cache    ports.StatsCache // optional; nil disables invalidation
	logger   zerolog.Logger
}

func NewPaymentService(clients ports.ClientRepository, payments ports.PaymentRepository, cache ports.StatsCache, logger zerolog.Logger) *PaymentService {
	return &PaymentService{
		clients:  clients,
		payments: payments,
		cache:    cache,
		logger:   logger,
	}
}

// SetPaymentState sets the paid flag (and optionally notes) for the single
// payment record of (client, month, year), creating it on first toggle.
//
// All validation happens before any store mutation. The write itself is one
// atomic upsert against the store's uniqueness constraint on the key tuple,
// so concurrent toggles for the same key cannot produce a second record.
func (s *PaymentService) SetPaymentState(ctx context.Context, in ports.SetPaymentStateInput) (*domain.Payment, error) {
	if in.ClientID == "" {
		return nil, domain.NewValidationError("client_id", "is required")
	}
	if !domain.ValidMonth(in.Month) {
		return nil, domain.NewValidationError("month", fmt.Sprintf("must be between %d and %d", domain.MinMonth, domain.MaxMonth))
	}
	if !domain.ValidYear(in.Year) {
		return nil, domain.NewValidationError("year", fmt.Sprintf("must be between %d and %d", domain.MinYear, domain.MaxYear))
	}

	if _, err := s.clients.FindByID(ctx, in.ClientID); err != nil {
		return nil, err
	}

	payment, err := s.payments.Upsert(ctx, ports.UpsertPaymentParams{
		ClientID: in.ClientID,
		Month:    in.Month,
		Year:     in.Year,
		Paid:     in.Paid,
		Notes:    in.Notes,
	})
	if err != nil {
		s.logger.Error().Err(err).
			Str("client_id", in.ClientID).
			Int("month", in.Month).
			Int("year", in.Year).
			Msg("payment upsert failed")
		return nil, err
	}

	s.invalidateStats(ctx)
	s.logger.Info().
		Str("client_id", in.ClientID).
		Int("month", in.Month).
		Int("year", in.Year).
		Bool("paid", in.Paid).
		Msg("payment state set")
	return payment, nil
}

// ListForClient returns every payment record of one client.
func (s *PaymentService) ListForClient(ctx context.Context, clientID string) ([]*domain.Payment, error) {
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		return nil, err
	}
	return s.payments.ListByClient(ctx, clientID)
}

func (s *PaymentService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("stats cache invalidation failed")
	}
}
