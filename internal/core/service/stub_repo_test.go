package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/clientbook/payments-api/internal/core/domain"
	"github.com/clientbook/payments-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub client repository
// ---------------------------------------------------------------------------

type stubClientRepo struct {
	byID    map[string]*domain.Client
	listErr error // if set, List returns this error
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{byID: make(map[string]*domain.Client)}
}

func (r *stubClientRepo) Insert(_ context.Context, c *domain.Client) error {
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	clone := *c
	return &clone, nil
}

// List mirrors the real Mongo query: case-insensitive substring match on
// name, phone, or email, ordered by (name, id).
func (r *stubClientRepo) List(_ context.Context, search string) ([]*domain.Client, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}

	needle := strings.ToLower(search)
	var out []*domain.Client
	for _, c := range r.byID {
		if needle != "" &&
			!strings.Contains(strings.ToLower(c.Name), needle) &&
			!strings.Contains(strings.ToLower(c.Phone), needle) &&
			!strings.Contains(strings.ToLower(c.Email), needle) {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *stubClientRepo) Update(_ context.Context, id string, c *domain.Client) (*domain.Client, error) {
	existing, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	existing.Name = c.Name
	existing.MonthlyAmount = c.MonthlyAmount
	existing.Phone = c.Phone
	existing.Email = c.Email
	clone := *existing
	return &clone, nil
}

func (r *stubClientRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// In-memory stub payment repository
// ---------------------------------------------------------------------------

// stubPaymentRepo keys records by (clientID, month, year), so the uniqueness
// constraint holds by construction, like the real compound index.
type stubPaymentRepo struct {
	byKey           map[string]*domain.Payment
	nextID          int
	upsertErr       error // if set, Upsert returns this error
	listByYearCalls int
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{byKey: make(map[string]*domain.Payment)}
}

func paymentKey(clientID string, month, year int) string {
	return fmt.Sprintf("%s|%d|%d", clientID, month, year)
}

func (r *stubPaymentRepo) Upsert(_ context.Context, p ports.UpsertPaymentParams) (*domain.Payment, error) {
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}

	key := paymentKey(p.ClientID, p.Month, p.Year)
	existing, ok := r.byKey[key]
	if !ok {
		r.nextID++
		existing = &domain.Payment{
			ID:       fmt.Sprintf("pay-%d", r.nextID),
			ClientID: p.ClientID,
			Month:    p.Month,
			Year:     p.Year,
		}
		r.byKey[key] = existing
	}
	existing.Paid = p.Paid
	if p.Notes != nil {
		existing.Notes = *p.Notes
	}
	clone := *existing
	return &clone, nil
}

func (r *stubPaymentRepo) Get(_ context.Context, clientID string, month, year int) (*domain.Payment, error) {
	p, ok := r.byKey[paymentKey(clientID, month, year)]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPaymentRepo) ListByClient(_ context.Context, clientID string) ([]*domain.Payment, error) {
	out := []*domain.Payment{}
	for _, p := range r.byKey {
		if p.ClientID == clientID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubPaymentRepo) ListByYear(_ context.Context, year int) ([]*domain.Payment, error) {
	r.listByYearCalls++
	out := []*domain.Payment{}
	for _, p := range r.byKey {
		if p.Year == year {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubPaymentRepo) ListAll(_ context.Context) ([]*domain.Payment, error) {
	out := []*domain.Payment{}
	for _, p := range r.byKey {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubPaymentRepo) DeleteByClient(_ context.Context, clientID string) error {
	for key, p := range r.byKey {
		if p.ClientID == clientID {
			delete(r.byKey, key)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// In-memory stub stats cache
// ---------------------------------------------------------------------------

type stubStatsCache struct {
	entries     map[string]*domain.Stats
	invalidated int
}

func newStubStatsCache() *stubStatsCache {
	return &stubStatsCache{entries: make(map[string]*domain.Stats)}
}

func (c *stubStatsCache) Get(_ context.Context, year, month int) (*domain.Stats, error) {
	return c.entries[fmt.Sprintf("%d:%d", year, month)], nil
}

func (c *stubStatsCache) Set(_ context.Context, year, month int, stats *domain.Stats) error {
	clone := *stats
	c.entries[fmt.Sprintf("%d:%d", year, month)] = &clone
	return nil
}

func (c *stubStatsCache) Invalidate(_ context.Context) error {
	c.entries = make(map[string]*domain.Stats)
	c.invalidated++
	return nil
}
