package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/clientbook/payments-api/internal/core/domain"
	"github.com/clientbook/payments-api/internal/core/ports"
)

// exportHeader is the fixed CSV column set, one row per (client, payment).
var exportHeader = []string{
	"Client Name", "Phone", "Email", "Monthly Amount",
	"Month", "Year", "Paid", "Notes",
}

type ExportService struct {
	clients  ports.ClientRepository
	payments ports.PaymentRepository
	logger   zerolog.Logger
}

func NewExportService(clients ports.ClientRepository, payments ports.PaymentRepository, logger zerolog.Logger) *ExportService {
	return &ExportService{
		clients:  clients,
		payments: payments,
		logger:   logger,
	}
}

// WriteCSV streams the full ledger to w: header first, then one row per
// payment, clients in name order, each client's payments grouped together.
// All payments are read in one scan and grouped by client id.
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer) error {
	clients, err := s.clients.List(ctx, "")
	if err != nil {
		return fmt.Errorf("export: list clients: %w", err)
	}
	payments, err := s.payments.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("export: list payments: %w", err)
	}

	byClient := make(map[string][]*domain.Payment, len(clients))
	for _, p := range payments {
		byClient[p.ClientID] = append(byClient[p.ClientID], p)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	rows := 0
	for _, c := range clients {
		for _, p := range byClient[c.ID] {
			record := []string{
				c.Name,
				c.Phone,
				c.Email,
				strconv.FormatInt(c.MonthlyAmount, 10),
				domain.MonthName(p.Month),
				strconv.Itoa(p.Year),
				paidLabel(p.Paid),
				p.Notes,
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("export: write row: %w", err)
			}
			rows++
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}

	s.logger.Info().Int("rows", rows).Int("clients", len(clients)).Msg("csv export written")
	return nil
}

func paidLabel(paid bool) string {
	if paid {
		return "Yes"
	}
	return "No"
}
