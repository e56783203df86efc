package postgres

import (
	"context"
	"database/sql"
	"errors"

	finance "practice-cloud/internal/finance/domain"
)

// RecordRepository loads practice records and applies session mutations.
// Calendar dates are stored as ISO YYYY-MM-DD text, matching the
// domain's string dates.
type RecordRepository struct {
	db        *sql.DB
	accountID string
}

// NewRecordRepository constructs a repository scoped to one account.
// Every query filters on the account id; the engine never sees another
// account's records.
func NewRecordRepository(db *sql.DB, accountID string) (*RecordRepository, error) {
	if db == nil {
		return nil, errors.New("record repo: nil db")
	}
	if accountID == "" {
		return nil, errors.New("record repo: empty account id")
	}
	return &RecordRepository{db: db, accountID: accountID}, nil
}

// ListSessions loads the account's sessions ordered by date.
func (r *RecordRepository) ListSessions(ctx context.Context) ([]finance.Session, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, patient_id, group_id, is_group, session_date, session_time, end_time,
	status, modality, value, paid, payment_date, invoice_number, invoice_date, invoice_attachment
FROM sessions
WHERE account_id = $1
ORDER BY session_date ASC, session_time ASC`, r.accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []finance.Session
	for rows.Next() {
		var s finance.Session
		var patientID, groupID, paymentDate, invoiceNumber, invoiceDate, attachment sql.NullString
		if err := rows.Scan(
			&s.ID, &patientID, &groupID, &s.IsGroup, &s.Date, &s.Time, &s.EndTime,
			&s.Status, &s.Modality, &s.Value, &s.Paid, &paymentDate, &invoiceNumber, &invoiceDate, &attachment,
		); err != nil {
			return nil, err
		}
		s.PatientID = patientID.String
		s.GroupID = groupID.String
		s.PaymentDate = paymentDate.String
		s.InvoiceNumber = invoiceNumber.String
		s.InvoiceDate = invoiceDate.String
		s.InvoiceAttachment = attachment.String
		result = append(result, s)
	}
	return result, rows.Err()
}

// ListExpenses loads the account's expenses ordered by date.
func (r *RecordRepository) ListExpenses(ctx context.Context) ([]finance.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, description, value, expense_date, category, status, payment_date
FROM expenses
WHERE account_id = $1
ORDER BY expense_date ASC`, r.accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []finance.Expense
	for rows.Next() {
		var e finance.Expense
		var category, paymentDate sql.NullString
		if err := rows.Scan(&e.ID, &e.Description, &e.Value, &e.Date, &category, &e.Status, &paymentDate); err != nil {
			return nil, err
		}
		e.Category = category.String
		e.PaymentDate = paymentDate.String
		result = append(result, e)
	}
	return result, rows.Err()
}

// ListPatients loads the account's patients.
func (r *RecordRepository) ListPatients(ctx context.Context) ([]finance.Patient, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, service_type_id, gender, default_value
FROM patients
WHERE account_id = $1
ORDER BY name ASC`, r.accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []finance.Patient
	for rows.Next() {
		var p finance.Patient
		var serviceTypeID, gender sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &serviceTypeID, &gender, &p.DefaultValue); err != nil {
			return nil, err
		}
		p.ServiceTypeID = serviceTypeID.String
		p.Gender = gender.String
		result = append(result, p)
	}
	return result, rows.Err()
}

// ListGroups loads the account's groups with their participants.
func (r *RecordRepository) ListGroups(ctx context.Context) ([]finance.Group, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, service_type_id, active
FROM groups
WHERE account_id = $1
ORDER BY name ASC`, r.accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []finance.Group
	index := make(map[string]int)
	for rows.Next() {
		var g finance.Group
		var serviceTypeID sql.NullString
		if err := rows.Scan(&g.ID, &g.Name, &serviceTypeID, &g.Active); err != nil {
			return nil, err
		}
		g.ServiceTypeID = serviceTypeID.String
		index[g.ID] = len(result)
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	participants, err := r.db.QueryContext(ctx, `
SELECT gp.group_id, gp.patient_id
FROM group_participants gp
JOIN groups g ON g.id = gp.group_id
WHERE g.account_id = $1`, r.accountID)
	if err != nil {
		return nil, err
	}
	defer participants.Close()
	for participants.Next() {
		var groupID, patientID string
		if err := participants.Scan(&groupID, &patientID); err != nil {
			return nil, err
		}
		if i, ok := index[groupID]; ok {
			result[i].Participants = append(result[i].Participants, patientID)
		}
	}
	return result, participants.Err()
}

// ListServiceTypes loads the account's service types.
func (r *RecordRepository) ListServiceTypes(ctx context.Context) ([]finance.ServiceType, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, duration_minutes
FROM service_types
WHERE account_id = $1
ORDER BY name ASC`, r.accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []finance.ServiceType
	for rows.Next() {
		var st finance.ServiceType
		if err := rows.Scan(&st.ID, &st.Name, &st.Duration); err != nil {
			return nil, err
		}
		result = append(result, st)
	}
	return result, rows.Err()
}

// MarkPaid sets paid and the payment date on one session. The update is
// guarded on paid = FALSE so a replayed confirmation or a concurrent
// applier changes nothing; the return value reports whether this call
// won the update.
func (r *RecordRepository) MarkPaid(ctx context.Context, sessionID, paymentDate string) (bool, error) {
	if sessionID == "" {
		return false, finance.ErrEmptySessionID
	}
	res, err := r.db.ExecContext(ctx, `
UPDATE sessions
SET paid = TRUE, payment_date = $1
WHERE id = $2 AND account_id = $3 AND paid = FALSE`, paymentDate, sessionID, r.accountID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// RevertPayment clears paid and the payment date on one session.
func (r *RecordRepository) RevertPayment(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, finance.ErrEmptySessionID
	}
	res, err := r.db.ExecContext(ctx, `
UPDATE sessions
SET paid = FALSE, payment_date = NULL
WHERE id = $1 AND account_id = $2 AND paid = TRUE`, sessionID, r.accountID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// AssignInvoice stamps one invoice number and issue date on the listed
// sessions inside a single transaction and reports how many rows it
// reached. The caller compares the count against the batch size and
// rejects partial application; the transaction keeps a failed batch
// from being left half-stamped.
func (r *RecordRepository) AssignInvoice(ctx context.Context, sessionIDs []string, invoiceNumber, issueDate string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	applied := 0
	for _, id := range sessionIDs {
		res, err := tx.ExecContext(ctx, `
UPDATE sessions
SET invoice_number = $1, invoice_date = $2
WHERE id = $3 AND account_id = $4`, invoiceNumber, issueDate, id, r.accountID)
		if err != nil {
			_ = tx.Rollback()
			return 0, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			_ = tx.Rollback()
			return 0, err
		}
		applied += int(affected)
	}
	if applied != len(sessionIDs) {
		_ = tx.Rollback()
		return applied, nil
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return applied, nil
}

// ClearInvoice removes the invoice number, issue date and attachment
// from every session carrying the number.
func (r *RecordRepository) ClearInvoice(ctx context.Context, invoiceNumber string) (int, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE sessions
SET invoice_number = NULL, invoice_date = NULL, invoice_attachment = NULL
WHERE invoice_number = $1 AND account_id = $2`, invoiceNumber, r.accountID)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
