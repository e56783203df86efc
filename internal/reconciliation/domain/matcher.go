package reconciliation

import (
	"math"

	finance "practice-cloud/internal/finance/domain"
)

// amountTolerance is the absolute tolerance for matching a statement
// credit against a session value, in currency units.
const amountTolerance = 0.01

// EntryResult reports what one statement entry matched: the number of
// candidate sessions found and the session selected, if any. An entry
// with zero candidates is skipped, not an error — partial
// reconciliation is acceptable.
type EntryResult struct {
	EntryID    string `json:"entry_id"`
	PatientID  string `json:"patient_id"`
	Candidates int    `json:"candidates"`
	SessionID  string `json:"session_id,omitempty"`
}

// MatchResult is the outcome of one reconciliation run: the per-entry
// report and the payment confirmations to hand to the mutation applier.
type MatchResult struct {
	Entries   []EntryResult                 `json:"entries"`
	Proposals []finance.PaymentConfirmation `json:"proposals"`
}

// Match maps statement entries to unpaid sessions of their mapped
// counterparty and proposes payment confirmations.
//
// Every entry must be mapped to a patient before the batch can run; any
// unmapped entry fails the whole run with *UnmappedEntriesError. Per
// entry, candidates are the patient's unpaid sessions whose value is
// within the tolerance, taken in the order the sessions were supplied;
// the first candidate wins. A session claimed by an earlier entry in
// the same run is no longer a candidate, so one session is never
// proposed twice within a single invocation. The claimed set is local
// to the call.
func Match(entries []Entry, mapping map[string]string, sessions []finance.Session) (MatchResult, error) {
	unmapped := make([]string, 0)
	for _, entry := range entries {
		if mapping[entry.ID] == "" {
			unmapped = append(unmapped, entry.ID)
		}
	}
	if len(unmapped) > 0 {
		return MatchResult{}, &UnmappedEntriesError{EntryIDs: unmapped}
	}

	result := MatchResult{Entries: make([]EntryResult, 0, len(entries))}
	claimed := make(map[string]struct{})
	for _, entry := range entries {
		patientID := mapping[entry.ID]
		report := EntryResult{EntryID: entry.ID, PatientID: patientID}
		for _, s := range sessions {
			if s.Paid || s.PatientID != patientID {
				continue
			}
			if _, taken := claimed[s.ID]; taken {
				continue
			}
			if math.Abs(s.Value-entry.Value) >= amountTolerance {
				continue
			}
			report.Candidates++
			if report.SessionID == "" {
				report.SessionID = s.ID
				claimed[s.ID] = struct{}{}
				result.Proposals = append(result.Proposals, finance.PaymentConfirmation{
					SessionID:   s.ID,
					PaymentDate: entry.Date,
				})
			}
		}
		result.Entries = append(result.Entries, report)
	}
	return result, nil
}
