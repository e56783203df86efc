package finance

const (
	SessionStatusScheduled        = "scheduled"
	SessionStatusCompleted        = "completed"
	SessionStatusExcusedAbsence   = "excused_absence"
	SessionStatusUnexcusedAbsence = "unexcused_absence"
	SessionStatusCancelled        = "cancelled"
)

const (
	ExpenseStatusPaid    = "paid"
	ExpenseStatusPending = "pending"
)

const (
	ModalityInPerson = "in_person"
	ModalityOnline   = "online"
)

// Session is one clinical session row as supplied by the record loader.
// Group sessions produce one row per participant; PatientID and GroupID
// are mutually exclusive, consistent with IsGroup. Dates are ISO
// YYYY-MM-DD strings in the account's calendar.
type Session struct {
	ID                string
	PatientID         string
	GroupID           string
	IsGroup           bool
	Date              string
	Time              string
	EndTime           string
	Status            string
	Modality          string
	Value             float64
	Paid              bool
	PaymentDate       string
	InvoiceNumber     string
	InvoiceDate       string
	InvoiceAttachment string
}

// Expense is one practice expense row.
type Expense struct {
	ID          string
	Description string
	Value       float64
	Date        string
	Category    string
	Status      string
	PaymentDate string
}

// Patient is a counterparty for individual sessions.
type Patient struct {
	ID            string
	Name          string
	ServiceTypeID string
	Gender        string
	DefaultValue  float64
}

// Group is a therapy group; its sessions are attended by Participants.
type Group struct {
	ID            string
	Name          string
	ServiceTypeID string
	Participants  []string
	Active        bool
}

// ServiceType defines the clinical duration of a session kind.
type ServiceType struct {
	ID       string
	Name     string
	Duration int // minutes
}
