package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clientbook/payments-api/internal/core/domain"
	"github.com/clientbook/payments-api/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// validate performs programmatic field checks (email syntax) shared by the
// create, update, and bulk-import paths.
var validate = validator.New()

type ClientService struct {
	clients  ports.ClientRepository
	payments ports.PaymentRepository
	cache    ports.StatsCache // optional; nil disables invalidation
	logger   zerolog.Logger

	// now is swapped out in tests to pin the default filter period.
	now func() time.Time
}

func NewClientService(clients ports.ClientRepository, payments ports.PaymentRepository, cache ports.StatsCache, logger zerolog.Logger) *ClientService {
	return &ClientService{
		clients:  clients,
		payments: payments,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
	}
}

// Create validates and persists a new client.
func (s *ClientService) Create(ctx context.Context, in ports.ClientInput) (*domain.Client, error) {
	if err := validateClientInput(in); err != nil {
		return nil, err
	}

	client := &domain.Client{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(in.Name),
		MonthlyAmount: in.MonthlyAmount,
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.TrimSpace(in.Email),
	}
	if err := s.clients.Insert(ctx, client); err != nil {
		s.logger.Error().Err(err).Msg("failed to insert client")
		return nil, err
	}

	s.invalidateStats(ctx)
	s.logger.Info().Str("client_id", client.ID).Str("name", client.Name).Msg("client created")
	return client, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.clients.FindByID(ctx, id)
}

// Update replaces the mutable fields of an existing client.
func (s *ClientService) Update(ctx context.Context, id string, in ports.ClientInput) (*domain.Client, error) {
	if err := validateClientInput(in); err != nil {
		return nil, err
	}

	updated, err := s.clients.Update(ctx, id, &domain.Client{
		Name:          strings.TrimSpace(in.Name),
		MonthlyAmount: in.MonthlyAmount,
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.TrimSpace(in.Email),
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	s.logger.Info().Str("client_id", id).Msg("client updated")
	return updated, nil
}

// Delete removes a client and all of its payments. Payments go first so a
// failure between the two steps never strands payments without an owner;
// the remaining client delete is safe to retry.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	if _, err := s.clients.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.payments.DeleteByClient(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("client_id", id).Msg("cascade payment delete failed")
		return err
	}
	if err := s.clients.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateStats(ctx)
	s.logger.Info().Str("client_id", id).Msg("client deleted with payments")
	return nil
}

// Query resolves the filter criteria into one ordered, paginated page of
// clients plus the total match count.
//
// The candidate set starts from a single search-scoped repository read. When a
// period-dependent filter is active, the year's payments are read once and
// grouped by client id; every candidate is then tested against the composed
// AND-predicate in one pass. No filter triggers per-client payment queries.
func (s *ClientService) Query(ctx context.Context, in ports.QueryClientsInput) (*ports.QueryClientsResult, error) {
	page, size, err := normalizePagination(in.Page, in.PageSize)
	if err != nil {
		return nil, err
	}
	paidFilter, err := normalizePaidFilter(in.Paid)
	if err != nil {
		return nil, err
	}

	needPeriod := paidFilter != ports.PaidFilterAny || in.OutstandingMin > 0
	var month, year int
	if needPeriod {
		if month, year, err = s.resolvePeriod(in.Month, in.Year); err != nil {
			return nil, err
		}
	}

	candidates, err := s.clients.List(ctx, strings.TrimSpace(in.Search))
	if err != nil {
		s.logger.Error().Err(err).Msg("client query failed")
		return nil, err
	}

	if len(candidates) > 0 && needPeriod {
		payments, err := s.payments.ListByYear(ctx, year)
		if err != nil {
			s.logger.Error().Err(err).Int("year", year).Msg("payment scan failed")
			return nil, err
		}
		facts := groupPaymentFacts(payments, month)

		filtered := candidates[:0]
		for _, c := range candidates {
			if matchesPeriodFilters(c, facts[c.ID], paidFilter, in.OutstandingMin) {
				filtered = append(filtered, c)
			}
		}
		candidates = filtered
	}

	total := len(candidates)
	return &ports.QueryClientsResult{
		Clients:    paginate(candidates, page, size),
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: (total + size - 1) / size,
	}, nil
}

// BulkImport creates one client per row. Row failures are isolated: each
// invalid row is reported with its 1-based position and the rest of the
// batch continues.
func (s *ClientService) BulkImport(ctx context.Context, rows []ports.ImportRow) (*ports.ImportResult, error) {
	result := &ports.ImportResult{
		Imported: []string{},
		Errors:   []ports.ImportRowError{},
	}

	for i, row := range rows {
		client, err := s.Create(ctx, ports.ClientInput{
			Name:          row.Name,
			MonthlyAmount: row.MonthlyAmount,
			Phone:         row.Phone,
			Email:         row.Email,
		})
		if err != nil {
			result.Errors = append(result.Errors, ports.ImportRowError{Row: i + 1, Err: err.Error()})
			continue
		}
		result.Imported = append(result.Imported, client.Name)
	}

	s.logger.Info().
		Int("imported", len(result.Imported)).
		Int("failed", len(result.Errors)).
		Msg("bulk import finished")
	return result, nil
}

// resolvePeriod fills in the current calendar month/year for unset period
// fields and validates supplied ones. Month uses -1 as "unset".
func (s *ClientService) resolvePeriod(month, year int) (int, int, error) {
	now := s.now()
	if month < 0 {
		month = int(now.Month()) - 1
	} else if !domain.ValidMonth(month) {
		return 0, 0, domain.NewValidationError("month", fmt.Sprintf("must be between %d and %d", domain.MinMonth, domain.MaxMonth))
	}
	if year == 0 {
		year = now.Year()
	} else if !domain.ValidYear(year) {
		return 0, 0, domain.NewValidationError("year", fmt.Sprintf("must be between %d and %d", domain.MinYear, domain.MaxYear))
	}
	return month, year, nil
}

func (s *ClientService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("stats cache invalidation failed")
	}
}

// paymentFacts summarizes one client's payments for the filter period.
type paymentFacts struct {
	paidCount   int  // paid payments in the target year
	paidAtMonth bool // a paid payment exists for the target month
}

// groupPaymentFacts folds one year of payments into per-client facts in a
// single pass.
func groupPaymentFacts(payments []*domain.Payment, month int) map[string]paymentFacts {
	facts := make(map[string]paymentFacts, len(payments))
	for _, p := range payments {
		if !p.Paid {
			continue
		}
		f := facts[p.ClientID]
		f.paidCount++
		if p.Month == month {
			f.paidAtMonth = true
		}
		facts[p.ClientID] = f
	}
	return facts
}

// matchesPeriodFilters is the composed AND-predicate over the period-dependent
// filters. A missing payment record counts as unpaid.
func matchesPeriodFilters(c *domain.Client, f paymentFacts, paidFilter string, outstandingMin int64) bool {
	switch paidFilter {
	case ports.PaidFilterPaid:
		if !f.paidAtMonth {
			return false
		}
	case ports.PaidFilterUnpaid:
		if f.paidAtMonth {
			return false
		}
	}

	if outstandingMin > 0 {
		remaining := int64(12-f.paidCount) * c.MonthlyAmount
		if remaining < outstandingMin {
			return false
		}
	}
	return true
}

func normalizePagination(page, size int) (int, int, error) {
	switch {
	case page < 0:
		return 0, 0, domain.NewValidationError("page", "must be at least 1")
	case page == 0:
		page = 1
	}
	switch {
	case size < 0:
		return 0, 0, domain.NewValidationError("page_size", "must be at least 1")
	case size == 0:
		size = defaultPageSize
	case size > maxPageSize:
		size = maxPageSize
	}
	return page, size, nil
}

func normalizePaidFilter(paid string) (string, error) {
	switch paid {
	case "", ports.PaidFilterAny:
		return ports.PaidFilterAny, nil
	case ports.PaidFilterPaid, ports.PaidFilterUnpaid:
		return paid, nil
	default:
		return "", domain.NewValidationError("paid", "must be one of: any, paid, unpaid")
	}
}

func paginate(clients []*domain.Client, page, size int) []*domain.Client {
	start := (page - 1) * size
	if start >= len(clients) {
		return []*domain.Client{}
	}
	end := start + size
	if end > len(clients) {
		end = len(clients)
	}
	return clients[start:end]
}

// validateClientInput applies the core field rules shared by create, update,
// and import: non-empty name, positive amount, syntactically valid email
// when present.
func validateClientInput(in ports.ClientInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.NewValidationError("name", "is required")
	}
	if in.MonthlyAmount < 1 {
		return domain.NewValidationError("monthly_amount", "must be at least 1")
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		if err := validate.Var(email, "email"); err != nil {
			return domain.NewValidationError("email", "must be a valid email address")
		}
	}
	return nil
}
