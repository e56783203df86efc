package application

import (
	"context"
	"errors"

	finapp "practice-cloud/internal/finance/application"
	invoicing "practice-cloud/internal/invoicing/domain"
	"practice-cloud/internal/observability/metrics"
)

// Service provides the invoicing use cases: list pending batches and
// settled invoices, confirm a batch, void an issued invoice.
type Service struct {
	records  finapp.RecordStore
	invoices *finapp.InvoiceService
}

// NewService constructs the service.
func NewService(records finapp.RecordStore, invoices *finapp.InvoiceService) (*Service, error) {
	if records == nil {
		return nil, errors.New("invoicing service: nil record store")
	}
	if invoices == nil {
		return nil, errors.New("invoicing service: nil invoice service")
	}
	return &Service{records: records, invoices: invoices}, nil
}

// Pending lists invoiceable batches.
func (s *Service) Pending(ctx context.Context) ([]invoicing.PendingBatch, error) {
	sessions, err := s.records.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	return invoicing.PendingBatches(sessions), nil
}

// Settled lists issued invoices.
func (s *Service) Settled(ctx context.Context) ([]invoicing.Invoice, error) {
	sessions, err := s.records.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	return invoicing.Settled(sessions), nil
}

// Confirm stamps an invoice on a pending batch.
func (s *Service) Confirm(ctx context.Context, assignment invoicing.InvoiceAssignment) error {
	err := s.invoices.Confirm(ctx, assignment)
	if err != nil {
		metrics.IncInvoiceOperation("confirm", metrics.ResultError)
		return err
	}
	metrics.IncInvoiceOperation("confirm", metrics.ResultSuccess)
	return nil
}

// Void clears an issued invoice.
func (s *Service) Void(ctx context.Context, void invoicing.InvoiceVoid) error {
	err := s.invoices.Void(ctx, void)
	if err != nil {
		metrics.IncInvoiceOperation("void", metrics.ResultError)
		return err
	}
	metrics.IncInvoiceOperation("void", metrics.ResultSuccess)
	return nil
}
