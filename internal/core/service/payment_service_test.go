package service

import (
	"context"
	"errors"
	"testing"

	"github.com/clientbook/payments-api/internal/core/domain"
	"github.com/clientbook/payments-api/internal/core/ports"
)

func strPtr(s string) *string { return &s }

func newPaymentFixture(t *testing.T) (*PaymentService, *stubPaymentRepo, *domain.Client) {
	t.Helper()
	clients := newStubClientRepo()
	payments := newStubPaymentRepo()
	client := &domain.Client{ID: "client-1", Name: "Acme", MonthlyAmount: 1000}
	if err := clients.Insert(context.Background(), client); err != nil {
		t.Fatal(err)
	}
	return NewPaymentService(clients, payments, nil, discardLogger), payments, client
}

func TestSetPaymentState_CreatesOnFirstToggle(t *testing.T) {
	svc, payments, client := newPaymentFixture(t)

	p, err := svc.SetPaymentState(context.Background(), ports.SetPaymentStateInput{
		ClientID: client.ID, Month: 3, Year: 2024, Paid: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == "" {
		t.Error("expected a generated payment id")
	}
	if !p.Paid || p.Month != 3 || p.Year != 2024 || p.ClientID != client.ID {
		t.Errorf("stored fields wrong: %+v", p)
	}
	if len(payments.byKey) != 1 {
		t.Errorf("expected exactly one record, got %d", len(payments.byKey))
	}
}

func TestSetPaymentState_ToggleConvergence(t *testing.T) {
	svc, payments, client := newPaymentFixture(t)

	first, err := svc.SetPaymentState(context.Background(), ports.SetPaymentStateInput{
		ClientID: client.ID, Month: 3, Year: 2024, Paid: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.SetPaymentState(context.Background(), ports.SetPaymentStateInput{
		ClientID: client.ID, Month: 3, Year: 2024, Paid: false,
	})
	if err != nil {
		t.Fatal(err)
	}

	if second.ID != first.ID {
		t.Errorf("toggle must update the same record, got ids %q and %q", first.ID, second.ID)
	}
	if second.Paid {
		t.Error("expected paid=false after the second toggle")
	}
	if len(payments.byKey) != 1 {
		t.Errorf("uniqueness violated: %d records for one key", len(payments.byKey))
	}
}

func TestSetPaymentState_SameKeyDifferentPeriodsAreDistinct(t *testing.T) {
	svc, payments, client := newPaymentFixture(t)

	keys := []struct{ month, year int }{{3, 2024}, {4, 2024}, {3, 2025}}
	for _, k := range keys {
		if _, err := svc.SetPaymentState(context.Background(), ports.SetPaymentStateInput{
			ClientID: client.ID, Month: k.month, Year: k.year, Paid: true,
		}); err != nil {
			t.Fatal(err)
		}
	}
	if len(payments.byKey) != 3 {
		t.Errorf("expected 3 distinct records, got %d", len(payments.byKey))
	}
}

func TestSetPaymentState_NotesTriState(t *testing.T) {
	svc, _, client := newPaymentFixture(t)
	key := ports.SetPaymentStateInput{ClientID: client.ID, Month: 3, Year: 2024, Paid: true}

	// Set initial notes.
	in := key
	in.Notes = strPtr("paid via bank transfer")
	if _, err := svc.SetPaymentState(context.Background(), in); err != nil {
		t.Fatal(err)
	}

	// Omitted notes must preserve the stored value.
	p, err := svc.SetPaymentState(context.Background(), key)
	if err != nil {
		t.Fatal(err)
	}
	if p.Notes != "paid via bank transfer" {
		t.Errorf("omitted notes must be preserved, got %q", p.Notes)
	}

	// An explicit empty string must clear them.
	in = key
	in.Notes = strPtr("")
	p, err = svc.SetPaymentState(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if p.Notes != "" {
		t.Errorf("explicit empty notes must clear, got %q", p.Notes)
	}
}

func TestSetPaymentState_UnknownClient(t *testing.T) {
	svc, payments, _ := newPaymentFixture(t)

	_, err := svc.SetPaymentState(context.Background(), ports.SetPaymentStateInput{
		ClientID: "ghost", Month: 3, Year: 2024, Paid: true,
	})
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Errorf("expected ErrClientNotFound, got %v", err)
	}
	if len(payments.byKey) != 0 {
		t.Error("no record may be written for an unknown client")
	}
}

func TestSetPaymentState_Validation(t *testing.T) {
	svc, payments, client := newPaymentFixture(t)

	cases := []struct {
		name string
		in   ports.SetPaymentStateInput
	}{
		{"month too high", ports.SetPaymentStateInput{ClientID: client.ID, Month: 12, Year: 2024}},
		{"month negative", ports.SetPaymentStateInput{ClientID: client.ID, Month: -1, Year: 2024}},
		{"year too low", ports.SetPaymentStateInput{ClientID: client.ID, Month: 3, Year: 1800}},
		{"missing client id", ports.SetPaymentStateInput{Month: 3, Year: 2024}},
	}
	for _, tc := range cases {
		if _, err := svc.SetPaymentState(context.Background(), tc.in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}
	if len(payments.byKey) != 0 {
		t.Error("validation failures must reject before any store mutation")
	}
}

func TestSetPaymentState_InvalidatesStatsCache(t *testing.T) {
	clients := newStubClientRepo()
	payments := newStubPaymentRepo()
	cache := newStubStatsCache()
	client := &domain.Client{ID: "client-1", Name: "Acme", MonthlyAmount: 1000}
	if err := clients.Insert(context.Background(), client); err != nil {
		t.Fatal(err)
	}
	svc := NewPaymentService(clients, payments, cache, discardLogger)

	if _, err := svc.SetPaymentState(context.Background(), ports.SetPaymentStateInput{
		ClientID: client.ID, Month: 3, Year: 2024, Paid: true,
	}); err != nil {
		t.Fatal(err)
	}
	if cache.invalidated != 1 {
		t.Errorf("expected one cache invalidation, got %d", cache.invalidated)
	}
}

func TestListForClient(t *testing.T) {
	svc, _, client := newPaymentFixture(t)

	for m := 0; m < 4; m++ {
		if _, err := svc.SetPaymentState(context.Background(), ports.SetPaymentStateInput{
			ClientID: client.ID, Month: m, Year: 2024, Paid: m%2 == 0,
		}); err != nil {
			t.Fatal(err)
		}
	}

	list, err := svc.ListForClient(context.Background(), client.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 4 {
		t.Errorf("expected 4 payments, got %d", len(list))
	}

	if _, err := svc.ListForClient(context.Background(), "ghost"); !errors.Is(err, domain.ErrClientNotFound) {
		t.Errorf("expected ErrClientNotFound for unknown client, got %v", err)
	}
}
