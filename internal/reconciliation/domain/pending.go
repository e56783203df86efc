package reconciliation

import (
	"sort"

	finance "practice-cloud/internal/finance/domain"
)

// PendingGroup is one patient's unpaid sessions of one calendar month,
// offered for manual payment confirmation as a single unit.
type PendingGroup struct {
	PatientID  string   `json:"patient_id"`
	Month      string   `json:"month"` // YYYY-MM
	SessionIDs []string `json:"session_ids"`
	Total      float64  `json:"total"`
}

// PendingReceivables groups unpaid sessions by patient and session
// month. Delivered sessions, unexcused absences and scheduled sessions
// all appear: the manual view also lets the operator settle upcoming
// sessions paid in advance. Groups are sorted by month ascending, then
// patient for a stable listing.
func PendingReceivables(sessions []finance.Session) []PendingGroup {
	byKey := make(map[string]*PendingGroup)
	order := make([]string, 0)
	for _, s := range sessions {
		if s.Paid {
			continue
		}
		switch s.Status {
		case finance.SessionStatusCompleted, finance.SessionStatusUnexcusedAbsence, finance.SessionStatusScheduled:
		default:
			continue
		}
		month := s.Date
		if len(month) >= 7 {
			month = month[:7]
		}
		key := s.PatientID + "_" + month
		group := byKey[key]
		if group == nil {
			group = &PendingGroup{PatientID: s.PatientID, Month: month}
			byKey[key] = group
			order = append(order, key)
		}
		group.SessionIDs = append(group.SessionIDs, s.ID)
		group.Total += s.Value
	}

	groups := make([]PendingGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, *byKey[key])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Month != groups[j].Month {
			return groups[i].Month < groups[j].Month
		}
		return groups[i].PatientID < groups[j].PatientID
	})
	return groups
}
