package analytics

import (
	"time"

	finance "practice-cloud/internal/finance/domain"
)

// Dataset is the account-scoped snapshot an aggregation runs over.
// The record loader supplies it already filtered to one account; the
// calculator never mutates it and performs no I/O.
type Dataset struct {
	Sessions     []finance.Session
	Expenses     []finance.Expense
	Patients     []finance.Patient
	Groups       []finance.Group
	ServiceTypes []finance.ServiceType
	Categories   []string
}

// Metrics is the financial metric set for one period.
type Metrics struct {
	Received     float64 `json:"received"`
	Receivable   float64 `json:"receivable"`
	ExpensesPaid float64 `json:"expenses_paid"`
	NetProfit    float64 `json:"net_profit"`
	HoursWorked  float64 `json:"hours_worked"`
	HourlyRate   float64 `json:"hourly_rate"`
}

// MonthMetrics is the metric set for one calendar month.
type MonthMetrics struct {
	Month time.Month `json:"month"`
	Metrics
}

// Series is a full year of monthly metrics with the twelve-month
// averages shown alongside the hours, rate and profit charts.
type Series struct {
	Year              int            `json:"year"`
	Months            []MonthMetrics `json:"months"`
	AverageHours      float64        `json:"average_hours"`
	AverageHourlyRate float64        `json:"average_hourly_rate"`
	AverageProfit     float64        `json:"average_profit"`
}

// SessionMix counts individual session rows versus distinct group
// occurrences among delivered-or-excused sessions.
type SessionMix struct {
	Individual int `json:"individual"`
	Group      int `json:"group"`
}

// StatusCounts tallies session outcomes by session date.
type StatusCounts struct {
	Completed         int `json:"completed"`
	ExcusedAbsences   int `json:"excused_absences"`
	UnexcusedAbsences int `json:"unexcused_absences"`
}

// ModalityCounts tallies delivered-or-excused sessions by modality.
type ModalityCounts struct {
	InPerson int `json:"in_person"`
	Online   int `json:"online"`
}

// ProfitComparison holds the monthly net profit of the selected year
// next to the preceding year, with twelve-month averages.
type ProfitComparison struct {
	Year            int         `json:"year"`
	Current         [12]float64 `json:"current"`
	Previous        [12]float64 `json:"previous"`
	CurrentAverage  float64     `json:"current_average"`
	PreviousAverage float64     `json:"previous_average"`
}
