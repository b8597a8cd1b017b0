package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/clientbook/payments-api/internal/core/domain"
	"github.com/clientbook/payments-api/internal/core/ports"
)

type StatsService struct {
	clients  ports.ClientRepository
	payments ports.PaymentRepository
	cache    ports.StatsCache // optional; nil disables caching
	logger   zerolog.Logger
}

func NewStatsService(clients ports.ClientRepository, payments ports.PaymentRepository, cache ports.StatsCache, logger zerolog.Logger) *StatsService {
	return &StatsService{
		clients:  clients,
		payments: payments,
		cache:    cache,
		logger:   logger,
	}
}

// Compute aggregates the financial position of all clients as of the given
// date. Cache errors degrade to recomputation, never to a request failure.
func (s *StatsService) Compute(ctx context.Context, asOf time.Time) (*domain.Stats, error) {
	year := asOf.Year()
	month := int(asOf.Month()) - 1

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, year, month)
		if err != nil {
			s.logger.Warn().Err(err).Msg("stats cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	// Clients and the year's payments are independent reads.
	var (
		clients  []*domain.Client
		payments []*domain.Payment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		clients, err = s.clients.List(gctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.payments.ListByYear(gctx, year)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("stats fetch failed")
		return nil, err
	}

	stats := aggregate(clients, payments, month)

	if s.cache != nil {
		if err := s.cache.Set(ctx, year, month, stats); err != nil {
			s.logger.Warn().Err(err).Msg("stats cache write failed")
		}
	}
	return stats, nil
}

// aggregate folds clients and one year of payments into totals. Payments are
// grouped by client id up front so the whole computation is a single pass
// over each input: O(clients + payments).
func aggregate(clients []*domain.Client, payments []*domain.Payment, currentMonth int) *domain.Stats {
	type yearFacts struct {
		paidCount int
		paidMonth [12]bool
	}
	byClient := make(map[string]yearFacts, len(clients))
	for _, p := range payments {
		if !p.Paid || !domain.ValidMonth(p.Month) {
			continue
		}
		f := byClient[p.ClientID]
		f.paidCount++
		f.paidMonth[p.Month] = true
		byClient[p.ClientID] = f
	}

	stats := &domain.Stats{TotalClients: len(clients)}
	for _, c := range clients {
		f := byClient[c.ID]
		stats.TotalExpected += c.AnnualExpected()
		stats.TotalPaid += int64(f.paidCount) * c.MonthlyAmount

		// Every month up to and including the current one with no paid
		// record counts as overdue.
		for m := 0; m <= currentMonth; m++ {
			if !f.paidMonth[m] {
				stats.OverdueCount++
			}
		}
	}
	stats.Outstanding = stats.TotalExpected - stats.TotalPaid
	return stats
}
