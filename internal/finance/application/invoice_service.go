package application

import (
	"context"
	"errors"

	invoicing "practice-cloud/internal/invoicing/domain"
)

// InvoiceService applies invoice assignments and voids.
type InvoiceService struct {
	store SessionStore
}

// NewInvoiceService constructs the service.
func NewInvoiceService(store SessionStore) (*InvoiceService, error) {
	if store == nil {
		return nil, errors.New("invoice service: nil session store")
	}
	return &InvoiceService{store: store}, nil
}

// Confirm stamps the assignment's invoice number and issue date on
// every session of the batch. The store runs the batch in one
// transaction; an update that reaches only part of the batch is
// surfaced as *invoicing.ApplyError so the caller never reports a
// half-invoiced batch as success.
func (s *InvoiceService) Confirm(ctx context.Context, assignment invoicing.InvoiceAssignment) error {
	if err := assignment.Validate(); err != nil {
		return err
	}
	applied, err := s.store.AssignInvoice(ctx, assignment.SessionIDs, assignment.InvoiceNumber, assignment.IssueDate)
	if err != nil {
		return err
	}
	if applied != len(assignment.SessionIDs) {
		return &invoicing.ApplyError{
			InvoiceNumber: assignment.InvoiceNumber,
			Applied:       applied,
			Expected:      len(assignment.SessionIDs),
		}
	}
	return nil
}

// Void clears the invoice number, issue date and attachment from every
// session carrying the number.
func (s *InvoiceService) Void(ctx context.Context, void invoicing.InvoiceVoid) error {
	if err := void.Validate(); err != nil {
		return err
	}
	applied, err := s.store.ClearInvoice(ctx, void.InvoiceNumber)
	if err != nil {
		return err
	}
	if applied == 0 {
		return invoicing.ErrInvoiceNotFound
	}
	return nil
}
