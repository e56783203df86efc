package finance

import "fmt"

// OccurrenceKey identifies one real-world group session instance.
// A group generates one Session row per participant for the same
// occurrence; counting per row would overcount hours and occurrences.
type OccurrenceKey string

// SessionOccurrenceKey derives the occurrence key from a group session
// row. Only meaningful for sessions with IsGroup set and a group id.
func SessionOccurrenceKey(s Session) OccurrenceKey {
	return OccurrenceKey(fmt.Sprintf("%s_%s_%s_%s", s.GroupID, s.Date, s.Time, s.EndTime))
}

// OccurrenceSet tracks occurrence keys already counted within one
// computation. It is transient state, scoped to a single invocation.
type OccurrenceSet map[OccurrenceKey]struct{}

// NewOccurrenceSet constructs an empty set.
func NewOccurrenceSet() OccurrenceSet {
	return make(OccurrenceSet)
}

// Seen records the session's occurrence key and reports whether it had
// been recorded before in this set.
func (set OccurrenceSet) Seen(s Session) bool {
	key := SessionOccurrenceKey(s)
	if _, ok := set[key]; ok {
		return true
	}
	set[key] = struct{}{}
	return false
}

// Len returns the number of distinct occurrences recorded.
func (set OccurrenceSet) Len() int { return len(set) }

// EligibleForHours reports whether a session contributes worked hours:
// delivered sessions and excused absences count, everything else does
// not. Excused absences carry zero revenue but their slot was held.
func EligibleForHours(s Session) bool {
	return s.Status == SessionStatusCompleted || s.Status == SessionStatusExcusedAbsence
}
