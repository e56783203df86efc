package reconciliation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyStatement is returned when the statement has no data lines.
	ErrEmptyStatement = errors.New("reconciliation: statement has no data lines")
	// ErrMissingColumns is returned when the date or amount column cannot be located.
	ErrMissingColumns = errors.New("reconciliation: missing statement columns")
	// ErrNoCredits is returned when no positive entry survives filtering.
	ErrNoCredits = errors.New("reconciliation: no credit entries found")
	// ErrUnmappedEntries guards confirmation: every entry needs a counterparty.
	ErrUnmappedEntries = errors.New("reconciliation: unmapped statement entries")
)

// MissingColumnsError reports which required statement columns were not
// found in the header, so the operator can fix the file and retry.
type MissingColumnsError struct {
	Columns []string
}

// Error implements error.
func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("reconciliation: statement columns not found: %s", strings.Join(e.Columns, ", "))
}

// Unwrap lets callers match ErrMissingColumns.
func (e *MissingColumnsError) Unwrap() error { return ErrMissingColumns }

// UnmappedEntriesError lists the statement entries still lacking a
// counterparty mapping; the batch cannot be confirmed until they are
// mapped or removed.
type UnmappedEntriesError struct {
	EntryIDs []string
}

// Error implements error.
func (e *UnmappedEntriesError) Error() string {
	return fmt.Sprintf("reconciliation: %d unmapped entries: %s", len(e.EntryIDs), strings.Join(e.EntryIDs, ", "))
}

// Unwrap lets callers match ErrUnmappedEntries.
func (e *UnmappedEntriesError) Unwrap() error { return ErrUnmappedEntries }
