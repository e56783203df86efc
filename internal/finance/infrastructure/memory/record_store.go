package memory

import (
	"context"
	"sync"

	finance "practice-cloud/internal/finance/domain"
)

// RecordStore is an in-memory record store for demo/testing. It
// implements both the read side and the session mutation side of the
// finance application interfaces.
type RecordStore struct {
	mu           sync.RWMutex
	sessions     []finance.Session
	expenses     []finance.Expense
	patients     []finance.Patient
	groups       []finance.Group
	serviceTypes []finance.ServiceType
}

// NewRecordStore constructs a store seeded with the given records.
func NewRecordStore(sessions []finance.Session, expenses []finance.Expense, patients []finance.Patient, groups []finance.Group, serviceTypes []finance.ServiceType) *RecordStore {
	return &RecordStore{
		sessions:     append([]finance.Session(nil), sessions...),
		expenses:     append([]finance.Expense(nil), expenses...),
		patients:     append([]finance.Patient(nil), patients...),
		groups:       append([]finance.Group(nil), groups...),
		serviceTypes: append([]finance.ServiceType(nil), serviceTypes...),
	}
}

// ListSessions returns a copy of the stored sessions.
func (r *RecordStore) ListSessions(ctx context.Context) ([]finance.Session, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]finance.Session(nil), r.sessions...), nil
}

// ListExpenses returns a copy of the stored expenses.
func (r *RecordStore) ListExpenses(ctx context.Context) ([]finance.Expense, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]finance.Expense(nil), r.expenses...), nil
}

// ListPatients returns a copy of the stored patients.
func (r *RecordStore) ListPatients(ctx context.Context) ([]finance.Patient, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]finance.Patient(nil), r.patients...), nil
}

// ListGroups returns a copy of the stored groups.
func (r *RecordStore) ListGroups(ctx context.Context) ([]finance.Group, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]finance.Group(nil), r.groups...), nil
}

// ListServiceTypes returns a copy of the stored service types.
func (r *RecordStore) ListServiceTypes(ctx context.Context) ([]finance.ServiceType, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]finance.ServiceType(nil), r.serviceTypes...), nil
}

// MarkPaid sets paid and the payment date on one session. It changes
// nothing when the session is already paid, mirroring the guarded
// update of the postgres store.
func (r *RecordStore) MarkPaid(ctx context.Context, sessionID, paymentDate string) (bool, error) {
	_ = ctx
	if sessionID == "" {
		return false, finance.ErrEmptySessionID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.sessions {
		if r.sessions[i].ID != sessionID {
			continue
		}
		if r.sessions[i].Paid {
			return false, nil
		}
		r.sessions[i].Paid = true
		r.sessions[i].PaymentDate = paymentDate
		return true, nil
	}
	return false, finance.ErrSessionNotFound
}

// RevertPayment clears paid and the payment date on one session.
func (r *RecordStore) RevertPayment(ctx context.Context, sessionID string) (bool, error) {
	_ = ctx
	if sessionID == "" {
		return false, finance.ErrEmptySessionID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.sessions {
		if r.sessions[i].ID != sessionID {
			continue
		}
		if !r.sessions[i].Paid {
			return false, nil
		}
		r.sessions[i].Paid = false
		r.sessions[i].PaymentDate = ""
		return true, nil
	}
	return false, finance.ErrSessionNotFound
}

// AssignInvoice stamps the invoice number and issue date on the listed
// sessions. Like the postgres transaction, a batch with an unknown
// session id stamps nothing; the reached count lets the caller detect
// the partial application.
func (r *RecordStore) AssignInvoice(ctx context.Context, sessionIDs []string, invoiceNumber, issueDate string) (int, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	found := make([]int, 0, len(sessionIDs))
	for _, id := range sessionIDs {
		for i := range r.sessions {
			if r.sessions[i].ID == id {
				found = append(found, i)
				break
			}
		}
	}
	if len(found) != len(sessionIDs) {
		return len(found), nil
	}
	for _, i := range found {
		r.sessions[i].InvoiceNumber = invoiceNumber
		r.sessions[i].InvoiceDate = issueDate
	}
	return len(found), nil
}

// ClearInvoice removes the invoice number, issue date and attachment
// from every session carrying the number.
func (r *RecordStore) ClearInvoice(ctx context.Context, invoiceNumber string) (int, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	applied := 0
	for i := range r.sessions {
		if r.sessions[i].InvoiceNumber != invoiceNumber {
			continue
		}
		r.sessions[i].InvoiceNumber = ""
		r.sessions[i].InvoiceDate = ""
		r.sessions[i].InvoiceAttachment = ""
		applied++
	}
	return applied, nil
}
