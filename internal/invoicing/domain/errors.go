package invoicing

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInvoiceNumber is returned when an assignment or void names
	// no invoice number.
	ErrEmptyInvoiceNumber = errors.New("invoicing: empty invoice number")

	// ErrEmptyBatch is returned when an assignment carries no sessions.
	ErrEmptyBatch = errors.New("invoicing: batch has no sessions")

	// ErrInvoiceNotFound is returned when no session carries the
	// requested invoice number.
	ErrInvoiceNotFound = errors.New("invoicing: invoice not found")

	// ErrPartialApply is returned when an invoice mutation updated only
	// part of its batch. The store must be inspected and repaired; this
	// is a data-integrity defect, not a user error.
	ErrPartialApply = errors.New("invoicing: batch partially applied")
)

// ApplyError reports a batch mutation that did not reach every
// constituent session.
type ApplyError struct {
	InvoiceNumber string
	Applied       int
	Expected      int
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("invoicing: invoice %q applied to %d of %d sessions", e.InvoiceNumber, e.Applied, e.Expected)
}

func (e *ApplyError) Unwrap() error { return ErrPartialApply }
