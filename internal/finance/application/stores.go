package application

import (
	"context"

	finance "practice-cloud/internal/finance/domain"
)

// RecordStore loads the practice's records for one account. Callers
// trust the store to scope every collection to the authenticated
// account; the engine never crosses account boundaries itself.
type RecordStore interface {
	ListSessions(ctx context.Context) ([]finance.Session, error)
	ListExpenses(ctx context.Context) ([]finance.Expense, error)
	ListPatients(ctx context.Context) ([]finance.Patient, error)
	ListGroups(ctx context.Context) ([]finance.Group, error)
	ListServiceTypes(ctx context.Context) ([]finance.ServiceType, error)
}

// SessionStore applies session mutations proposed by the engine.
//
// MarkPaid and RevertPayment report whether a row actually changed:
// both are guarded by the session's current paid state, so replaying a
// confirmation or racing a second applier is a no-op rather than a
// double payment. AssignInvoice stamps one invoice on a batch inside a
// single transaction and reports how many sessions it reached;
// ClearInvoice removes the number, issue date and attachment from every
// session carrying it.
type SessionStore interface {
	MarkPaid(ctx context.Context, sessionID, paymentDate string) (bool, error)
	RevertPayment(ctx context.Context, sessionID string) (bool, error)
	AssignInvoice(ctx context.Context, sessionIDs []string, invoiceNumber, issueDate string) (int, error)
	ClearInvoice(ctx context.Context, invoiceNumber string) (int, error)
}
