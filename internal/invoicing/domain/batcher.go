package invoicing

import (
	"sort"

	finance "practice-cloud/internal/finance/domain"
)

// PendingBatch is a group of paid, not-yet-invoiced sessions of one
// patient settled on one date. The whole batch receives a single
// invoice number.
type PendingBatch struct {
	PatientID   string   `json:"patient_id"`
	PaymentDate string   `json:"payment_date"`
	SessionIDs  []string `json:"session_ids"`
	Total       float64  `json:"total"`
}

// Invoice is the settled view of one issued invoice number across the
// sessions that carry it.
type Invoice struct {
	Number     string   `json:"number"`
	PatientID  string   `json:"patient_id"`
	IssueDate  string   `json:"issue_date"`
	Attachment string   `json:"attachment,omitempty"`
	SessionIDs []string `json:"session_ids"`
	Total      float64  `json:"total"`
}

// PendingBatches groups invoiceable sessions by patient and effective
// payment date. A session qualifies when it is paid, carries no invoice
// number yet and has a positive value. Batches are sorted by payment
// date descending, newest settlements first, then patient for a stable
// order within a day.
func PendingBatches(sessions []finance.Session) []PendingBatch {
	byKey := make(map[string]*PendingBatch)
	order := make([]string, 0)
	for _, s := range sessions {
		if !s.Paid || s.InvoiceNumber != "" || s.Value <= 0 {
			continue
		}
		date := s.SettlementDate()
		key := s.PatientID + "_" + date
		batch := byKey[key]
		if batch == nil {
			batch = &PendingBatch{PatientID: s.PatientID, PaymentDate: date}
			byKey[key] = batch
			order = append(order, key)
		}
		batch.SessionIDs = append(batch.SessionIDs, s.ID)
		batch.Total += s.Value
	}

	batches := make([]PendingBatch, 0, len(order))
	for _, key := range order {
		batches = append(batches, *byKey[key])
	}
	sort.SliceStable(batches, func(i, j int) bool {
		if batches[i].PaymentDate != batches[j].PaymentDate {
			return batches[i].PaymentDate > batches[j].PaymentDate
		}
		return batches[i].PatientID < batches[j].PatientID
	})
	return batches
}

// Settled groups invoiced sessions by invoice number. The issue date,
// patient and attachment come from the first session seen for the
// number; the total is the summed session value. Invoices are sorted by
// issue date descending, then number.
func Settled(sessions []finance.Session) []Invoice {
	byNumber := make(map[string]*Invoice)
	order := make([]string, 0)
	for _, s := range sessions {
		if s.InvoiceNumber == "" {
			continue
		}
		inv := byNumber[s.InvoiceNumber]
		if inv == nil {
			inv = &Invoice{
				Number:     s.InvoiceNumber,
				PatientID:  s.PatientID,
				IssueDate:  s.InvoiceDate,
				Attachment: s.InvoiceAttachment,
			}
			byNumber[s.InvoiceNumber] = inv
			order = append(order, s.InvoiceNumber)
		}
		inv.SessionIDs = append(inv.SessionIDs, s.ID)
		inv.Total += s.Value
	}

	invoices := make([]Invoice, 0, len(order))
	for _, number := range order {
		invoices = append(invoices, *byNumber[number])
	}
	sort.SliceStable(invoices, func(i, j int) bool {
		if invoices[i].IssueDate != invoices[j].IssueDate {
			return invoices[i].IssueDate > invoices[j].IssueDate
		}
		return invoices[i].Number < invoices[j].Number
	})
	return invoices
}

// InvoiceAssignment proposes stamping one invoice number and issue date
// on every session of a pending batch. The mutation must land on all
// sessions or none.
type InvoiceAssignment struct {
	InvoiceNumber string   `json:"invoice_number"`
	IssueDate     string   `json:"issue_date"`
	SessionIDs    []string `json:"session_ids"`
}

// Validate checks the assignment names a number and at least one session.
func (a InvoiceAssignment) Validate() error {
	if a.InvoiceNumber == "" {
		return ErrEmptyInvoiceNumber
	}
	if len(a.SessionIDs) == 0 {
		return ErrEmptyBatch
	}
	return nil
}

// InvoiceVoid proposes clearing the invoice number, issue date and
// attachment from every session carrying the number.
type InvoiceVoid struct {
	InvoiceNumber string `json:"invoice_number"`
}

// Validate checks the void names a number.
func (v InvoiceVoid) Validate() error {
	if v.InvoiceNumber == "" {
		return ErrEmptyInvoiceNumber
	}
	return nil
}
