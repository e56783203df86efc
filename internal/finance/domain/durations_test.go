package finance

import "testing"

func testIndex() *DurationIndex {
	patients := []Patient{
		{ID: "p1", Name: "Ana", ServiceTypeID: "st-ind"},
		{ID: "p2", Name: "Bruno", ServiceTypeID: "st-ind"},
		{ID: "p3", Name: "Clara"}, // no service type assigned
	}
	groups := []Group{
		{ID: "g1", Name: "Quarta à noite", ServiceTypeID: "st-grp", Participants: []string{"p1", "p2"}, Active: true},
	}
	serviceTypes := []ServiceType{
		{ID: "st-ind", Name: "Individual", Duration: 50},
		{ID: "st-grp", Name: "Grupo", Duration: 90},
	}
	return NewDurationIndex(patients, groups, serviceTypes)
}

func groupRow(patientID string) Session {
	return Session{
		ID:        "s-" + patientID,
		GroupID:   "g1",
		IsGroup:   true,
		PatientID: "",
		Date:      "2024-03-06",
		Time:      "19:00",
		EndTime:   "20:30",
		Status:    SessionStatusCompleted,
	}
}

func TestGroupOccurrenceCountedOnce(t *testing.T) {
	ix := testIndex()
	seen := NewOccurrenceSet()

	total := 0.0
	for _, row := range []Session{groupRow("p1"), groupRow("p2")} {
		total += ix.SessionHours(row, seen)
	}
	if total != 1.5 {
		t.Fatalf("two participant rows of one occurrence: got %v hours, want 1.5", total)
	}
	if seen.Len() != 1 {
		t.Fatalf("distinct occurrences: got %d, want 1", seen.Len())
	}
}

func TestDistinctOccurrencesCountSeparately(t *testing.T) {
	ix := testIndex()
	seen := NewOccurrenceSet()

	first := groupRow("p1")
	second := groupRow("p1")
	second.Date = "2024-03-13"

	total := ix.SessionHours(first, seen) + ix.SessionHours(second, seen)
	if total != 3.0 {
		t.Fatalf("two occurrences: got %v hours, want 3.0", total)
	}
}

func TestIndividualRowsNotDeduplicated(t *testing.T) {
	ix := testIndex()
	seen := NewOccurrenceSet()

	row := Session{ID: "s1", PatientID: "p1", Date: "2024-03-06", Status: SessionStatusCompleted}
	total := ix.SessionHours(row, seen)
	row.ID = "s2"
	total += ix.SessionHours(row, seen)
	if total != 50.0/60*2 {
		t.Fatalf("individual rows: got %v hours", total)
	}
}

func TestDanglingReferencesContributeZero(t *testing.T) {
	ix := testIndex()
	seen := NewOccurrenceSet()

	deletedGroup := groupRow("p1")
	deletedGroup.GroupID = "g-gone"
	if h := ix.SessionHours(deletedGroup, seen); h != 0 {
		t.Fatalf("deleted group: got %v hours, want 0", h)
	}

	noService := Session{ID: "s1", PatientID: "p3", Date: "2024-03-06", Status: SessionStatusCompleted}
	if h := ix.SessionHours(noService, seen); h != 0 {
		t.Fatalf("patient without service type: got %v hours, want 0", h)
	}

	unknownPatient := Session{ID: "s2", PatientID: "p-gone", Date: "2024-03-06", Status: SessionStatusCompleted}
	if h := ix.SessionHours(unknownPatient, seen); h != 0 {
		t.Fatalf("deleted patient: got %v hours, want 0", h)
	}
}

func TestEligibleForHours(t *testing.T) {
	eligible := map[string]bool{
		SessionStatusCompleted:        true,
		SessionStatusExcusedAbsence:   true,
		SessionStatusUnexcusedAbsence: false,
		SessionStatusScheduled:        false,
		SessionStatusCancelled:        false,
	}
	for status, want := range eligible {
		if got := EligibleForHours(Session{Status: status}); got != want {
			t.Fatalf("status %s: got %v, want %v", status, got, want)
		}
	}
}
