package ports

import (
	"context"
	"time"

	"github.com/clientbook/payments-api/internal/core/domain"
)

// StatsCache stores computed aggregates keyed by reference period.
// Implementations must treat failures as soft: the aggregator falls back
// to recomputation on any cache error.
type StatsCache interface {
	Get(ctx context.Context, year, month int) (*domain.Stats, error)
	Set(ctx context.Context, year, month int, stats *domain.Stats) error
	Invalidate(ctx context.Context) error
}

// StatsService computes aggregate financial status across all clients.
type StatsService interface {
	Compute(ctx context.Context, asOf time.Time) (*domain.Stats, error)
}
