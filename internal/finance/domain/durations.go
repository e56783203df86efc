package finance

// DurationIndex resolves the clinical duration a session contributes,
// built once per computation from the loaded reference records.
type DurationIndex struct {
	patientService map[string]string
	groupService   map[string]string
	minutes        map[string]int
}

// NewDurationIndex builds the lookup tables.
func NewDurationIndex(patients []Patient, groups []Group, serviceTypes []ServiceType) *DurationIndex {
	ix := &DurationIndex{
		patientService: make(map[string]string, len(patients)),
		groupService:   make(map[string]string, len(groups)),
		minutes:        make(map[string]int, len(serviceTypes)),
	}
	for _, p := range patients {
		ix.patientService[p.ID] = p.ServiceTypeID
	}
	for _, g := range groups {
		ix.groupService[g.ID] = g.ServiceTypeID
	}
	for _, st := range serviceTypes {
		ix.minutes[st.ID] = st.Duration
	}
	return ix
}

// SessionHours returns the hour contribution of one session row.
//
// Group rows contribute the group's service-type duration once per
// distinct occurrence key; rows repeating an occurrence already in seen
// contribute zero. Individual rows contribute the patient's service-type
// duration independently per row. Dangling patient, group or service
// type references degrade to a zero contribution instead of failing so
// totals stay computable.
func (ix *DurationIndex) SessionHours(s Session, seen OccurrenceSet) float64 {
	if s.IsGroup && s.GroupID != "" {
		if seen.Seen(s) {
			return 0
		}
		return ix.serviceHours(ix.groupService[s.GroupID])
	}
	return ix.serviceHours(ix.patientService[s.PatientID])
}

func (ix *DurationIndex) serviceHours(serviceTypeID string) float64 {
	if serviceTypeID == "" {
		return 0
	}
	minutes := ix.minutes[serviceTypeID]
	if minutes <= 0 {
		return 0
	}
	return float64(minutes) / 60
}
