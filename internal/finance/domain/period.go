package finance

import (
	"fmt"
	"time"
)

// Period is a calendar bucket: a whole year, or one month of a year
// when Month is non-zero.
type Period struct {
	Year  int
	Month time.Month
}

// YearPeriod builds a whole-year period.
func YearPeriod(year int) Period {
	return Period{Year: year}
}

// MonthPeriod builds a single-month period.
func MonthPeriod(year int, month time.Month) Period {
	return Period{Year: year, Month: month}
}

// Start returns the first day of the period as an ISO date.
func (p Period) Start() string {
	if p.Month == 0 {
		return fmt.Sprintf("%04d-01-01", p.Year)
	}
	return fmt.Sprintf("%04d-%02d-01", p.Year, p.Month)
}

// End returns the last day of the period as an ISO date.
func (p Period) End() string {
	if p.Month == 0 {
		return fmt.Sprintf("%04d-12-31", p.Year)
	}
	lastDay := time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return fmt.Sprintf("%04d-%02d-%02d", p.Year, p.Month, lastDay)
}

// Contains reports whether the ISO date falls inside the period,
// bounds inclusive. ISO dates order lexically, so no parsing is needed;
// an empty date is never contained.
func (p Period) Contains(date string) bool {
	if date == "" {
		return false
	}
	return date >= p.Start() && date <= p.End()
}

// EffectiveDate picks the settlement date for period bucketing: the
// primary date when present, otherwise the fallback. Used everywhere
// "received"/"paid" semantics bucket records by period.
func EffectiveDate(primary, fallback string) string {
	if primary != "" {
		return primary
	}
	return fallback
}

// SettlementDate returns the session's effective payment date.
func (s Session) SettlementDate() string {
	return EffectiveDate(s.PaymentDate, s.Date)
}

// SettlementDate returns the expense's effective payment date.
func (e Expense) SettlementDate() string {
	return EffectiveDate(e.PaymentDate, e.Date)
}
