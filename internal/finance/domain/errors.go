package finance

import "errors"

var (
	// ErrSessionNotFound is returned when a session id cannot be resolved.
	ErrSessionNotFound = errors.New("finance: session not found")
	// ErrEmptySessionID is returned when a mutation names no session.
	ErrEmptySessionID = errors.New("finance: empty session id")
	// ErrEmptyInvoiceNumber is returned when an invoice mutation has no number.
	ErrEmptyInvoiceNumber = errors.New("finance: empty invoice number")
)
