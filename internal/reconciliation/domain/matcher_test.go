package reconciliation

import (
	"errors"
	"testing"

	finance "practice-cloud/internal/finance/domain"
)

func TestMatchProposesPayment(t *testing.T) {
	sessions := []finance.Session{
		{ID: "s1", PatientID: "p1", Value: 150.00, Paid: false, Status: finance.SessionStatusCompleted},
	}
	entries := []Entry{{ID: "entry-1", Date: "01/01/2024", Value: 150.00}}
	mapping := map[string]string{"entry-1": "p1"}

	result, err := Match(entries, mapping, sessions)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if len(result.Proposals) != 1 {
		t.Fatalf("proposals: got %d, want 1", len(result.Proposals))
	}
	p := result.Proposals[0]
	if p.SessionID != "s1" || p.PaymentDate != "01/01/2024" {
		t.Fatalf("proposal: %+v", p)
	}
	if result.Entries[0].Candidates != 1 {
		t.Fatalf("candidates: got %d, want 1", result.Entries[0].Candidates)
	}
}

func TestMatchNeverDoubleAssignsOneSession(t *testing.T) {
	sessions := []finance.Session{
		{ID: "s1", PatientID: "p1", Value: 150.00, Paid: false},
	}
	entries := []Entry{
		{ID: "entry-1", Date: "01/02/2024", Value: 150.00},
		{ID: "entry-2", Date: "08/02/2024", Value: 150.00},
	}
	mapping := map[string]string{"entry-1": "p1", "entry-2": "p1"}

	result, err := Match(entries, mapping, sessions)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if len(result.Proposals) != 1 {
		t.Fatalf("proposals: got %d, want 1", len(result.Proposals))
	}
	if result.Entries[1].Candidates != 0 || result.Entries[1].SessionID != "" {
		t.Fatalf("second entry should find nothing: %+v", result.Entries[1])
	}
}

func TestMatchTakesFirstUnpaidInSuppliedOrder(t *testing.T) {
	sessions := []finance.Session{
		{ID: "s1", PatientID: "p1", Value: 150.00, Paid: true},
		{ID: "s2", PatientID: "p1", Value: 150.00, Paid: false},
		{ID: "s3", PatientID: "p1", Value: 150.00, Paid: false},
	}
	entries := []Entry{{ID: "entry-1", Date: "01/02/2024", Value: 150.00}}
	mapping := map[string]string{"entry-1": "p1"}

	result, err := Match(entries, mapping, sessions)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if result.Proposals[0].SessionID != "s2" {
		t.Fatalf("expected first unpaid session s2, got %s", result.Proposals[0].SessionID)
	}
	if result.Entries[0].Candidates != 2 {
		t.Fatalf("candidates: got %d, want 2", result.Entries[0].Candidates)
	}
}

func TestMatchRespectsCounterpartyAndTolerance(t *testing.T) {
	sessions := []finance.Session{
		{ID: "s1", PatientID: "p2", Value: 150.00, Paid: false}, // other patient
		{ID: "s2", PatientID: "p1", Value: 150.02, Paid: false}, // off by more than tolerance
		{ID: "s3", PatientID: "p1", Value: 150.005, Paid: false},
	}
	entries := []Entry{{ID: "entry-1", Date: "03/02/2024", Value: 150.00}}
	mapping := map[string]string{"entry-1": "p1"}

	result, err := Match(entries, mapping, sessions)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if len(result.Proposals) != 1 || result.Proposals[0].SessionID != "s3" {
		t.Fatalf("proposals: %+v", result.Proposals)
	}
}

func TestMatchUnmappedEntriesBlockTheRun(t *testing.T) {
	entries := []Entry{
		{ID: "entry-1", Value: 100},
		{ID: "entry-2", Value: 200},
	}
	mapping := map[string]string{"entry-1": "p1"}

	_, err := Match(entries, mapping, nil)
	if !errors.Is(err, ErrUnmappedEntries) {
		t.Fatalf("expected ErrUnmappedEntries, got %v", err)
	}
	var detail *UnmappedEntriesError
	if !errors.As(err, &detail) {
		t.Fatalf("expected UnmappedEntriesError, got %T", err)
	}
	if len(detail.EntryIDs) != 1 || detail.EntryIDs[0] != "entry-2" {
		t.Fatalf("unmapped ids: %v", detail.EntryIDs)
	}
}

func TestMatchSkipsEntryWithoutCandidates(t *testing.T) {
	sessions := []finance.Session{
		{ID: "s1", PatientID: "p1", Value: 90.00, Paid: false},
	}
	entries := []Entry{{ID: "entry-1", Date: "05/02/2024", Value: 150.00}}
	mapping := map[string]string{"entry-1": "p1"}

	result, err := Match(entries, mapping, sessions)
	if err != nil {
		t.Fatalf("partial reconciliation must not fail: %v", err)
	}
	if len(result.Proposals) != 0 {
		t.Fatalf("proposals: %+v", result.Proposals)
	}
	if result.Entries[0].Candidates != 0 {
		t.Fatalf("candidates: got %d, want 0", result.Entries[0].Candidates)
	}
}

func TestPendingReceivablesGrouping(t *testing.T) {
	sessions := []finance.Session{
		{ID: "s1", PatientID: "p1", Date: "2024-03-06", Status: finance.SessionStatusCompleted, Value: 150, Paid: false},
		{ID: "s2", PatientID: "p1", Date: "2024-03-13", Status: finance.SessionStatusUnexcusedAbsence, Value: 150, Paid: false},
		{ID: "s3", PatientID: "p1", Date: "2024-04-03", Status: finance.SessionStatusScheduled, Value: 150, Paid: false},
		{ID: "s4", PatientID: "p2", Date: "2024-03-07", Status: finance.SessionStatusCompleted, Value: 200, Paid: false},
		{ID: "s5", PatientID: "p1", Date: "2024-03-20", Status: finance.SessionStatusCancelled, Value: 150, Paid: false},
		{ID: "s6", PatientID: "p1", Date: "2024-03-27", Status: finance.SessionStatusCompleted, Value: 150, Paid: true},
	}

	groups := PendingReceivables(sessions)
	if len(groups) != 3 {
		t.Fatalf("groups: got %d, want 3", len(groups))
	}
	first := groups[0]
	if first.PatientID != "p1" || first.Month != "2024-03" {
		t.Fatalf("first group: %+v", first)
	}
	if len(first.SessionIDs) != 2 || first.Total != 300 {
		t.Fatalf("first group contents: %+v", first)
	}
	if groups[1].PatientID != "p2" {
		t.Fatalf("month tie should order by patient: %+v", groups[1])
	}
	if groups[2].Month != "2024-04" {
		t.Fatalf("last group: %+v", groups[2])
	}
}
