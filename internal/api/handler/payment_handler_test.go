package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clientbook/payments-api/internal/core/domain"
	"github.com/clientbook/payments-api/internal/core/ports"
)

type stubPaymentService struct {
	setFn  func(ctx context.Context, in ports.SetPaymentStateInput) (*domain.Payment, error)
	listFn func(ctx context.Context, clientID string) ([]*domain.Payment, error)
}

func (s *stubPaymentService) SetPaymentState(ctx context.Context, in ports.SetPaymentStateInput) (*domain.Payment, error) {
	return s.setFn(ctx, in)
}

func (s *stubPaymentService) ListForClient(ctx context.Context, clientID string) ([]*domain.Payment, error) {
	return s.listFn(ctx, clientID)
}

func newToggleContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/v1/payments/toggle", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestPaymentHandler_Toggle_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	stub := &stubPaymentService{
		setFn: func(ctx context.Context, in ports.SetPaymentStateInput) (*domain.Payment, error) {
			if in.ClientID != "client_1" || in.Month != 5 || in.Year != 2024 || !in.Paid {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Notes != nil {
				t.Fatalf("expected nil notes, got %q", *in.Notes)
			}
			return &domain.Payment{ID: "pay_1", ClientID: in.ClientID, Month: in.Month, Year: in.Year, Paid: in.Paid}, nil
		},
	}
	handler := NewPaymentHandler(stub)

	c, rec := newToggleContext(e, `{"client_id":"client_1","month":5,"year":2024,"paid":true}`)
	if err := handler.Toggle(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp paymentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != "pay_1" || resp.Month != 5 || !resp.Paid {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

// January is month zero on the wire; the pointer field must keep the
// required check from eating it.
func TestPaymentHandler_Toggle_JanuaryAccepted(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	stub := &stubPaymentService{
		setFn: func(ctx context.Context, in ports.SetPaymentStateInput) (*domain.Payment, error) {
			if in.Month != 0 {
				t.Fatalf("expected month 0, got %d", in.Month)
			}
			return &domain.Payment{ID: "pay_1", ClientID: in.ClientID, Month: in.Month, Year: in.Year, Paid: in.Paid}, nil
		},
	}
	handler := NewPaymentHandler(stub)

	c, rec := newToggleContext(e, `{"client_id":"client_1","month":0,"year":2024,"paid":false}`)
	if err := handler.Toggle(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestPaymentHandler_Toggle_MissingPaid(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	stub := &stubPaymentService{
		setFn: func(ctx context.Context, in ports.SetPaymentStateInput) (*domain.Payment, error) {
			t.Fatal("service must not be called on invalid payload")
			return nil, nil
		},
	}
	handler := NewPaymentHandler(stub)

	c, _ := newToggleContext(e, `{"client_id":"client_1","month":5,"year":2024}`)
	err := handler.Toggle(c)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 error, got %v", err)
	}
}

func TestPaymentHandler_Toggle_UnknownClient(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	stub := &stubPaymentService{
		setFn: func(ctx context.Context, in ports.SetPaymentStateInput) (*domain.Payment, error) {
			return nil, domain.ErrClientNotFound
		},
	}
	handler := NewPaymentHandler(stub)

	c, _ := newToggleContext(e, `{"client_id":"ghost","month":5,"year":2024,"paid":true}`)
	err := handler.Toggle(c)
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestPaymentHandler_ListForClient(t *testing.T) {
	e := echo.New()

	stub := &stubPaymentService{
		listFn: func(ctx context.Context, clientID string) ([]*domain.Payment, error) {
			if clientID != "client_1" {
				t.Fatalf("unexpected client id %q", clientID)
			}
			return []*domain.Payment{
				{ID: "pay_1", ClientID: clientID, Month: 0, Year: 2024, Paid: true},
				{ID: "pay_2", ClientID: clientID, Month: 1, Year: 2024, Paid: false},
			}, nil
		},
	}
	handler := NewPaymentHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/clients/client_1/payments", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("client_1")

	if err := handler.ListForClient(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []paymentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0].ID != "pay_1" || resp[1].ID != "pay_2" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
