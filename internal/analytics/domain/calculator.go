package analytics

import (
	"time"

	finance "practice-cloud/internal/finance/domain"
)

// Calculator computes the financial metric views over one dataset.
// All operations are pure: recomputing with the same dataset yields
// identical results. Reference lookups are indexed once at construction
// and reused by every metric in the same calculator.
type Calculator struct {
	data      Dataset
	durations *finance.DurationIndex
	patients  map[string]finance.Patient
}

// NewCalculator constructs a calculator over the dataset.
func NewCalculator(data Dataset) *Calculator {
	patients := make(map[string]finance.Patient, len(data.Patients))
	for _, p := range data.Patients {
		patients[p.ID] = p
	}
	return &Calculator{
		data:      data,
		durations: finance.NewDurationIndex(data.Patients, data.Groups, data.ServiceTypes),
		patients:  patients,
	}
}

// YearMetrics computes the metric set for a whole year.
func (c *Calculator) YearMetrics(year int) Metrics {
	return c.periodMetrics(finance.YearPeriod(year))
}

// MonthlySeries computes the metric set for each month of the year,
// plus the twelve-month averages for hours, hourly rate and profit.
func (c *Calculator) MonthlySeries(year int) Series {
	series := Series{Year: year, Months: make([]MonthMetrics, 0, 12)}
	for month := time.January; month <= time.December; month++ {
		m := c.periodMetrics(finance.MonthPeriod(year, month))
		series.Months = append(series.Months, MonthMetrics{Month: month, Metrics: m})
		series.AverageHours += m.HoursWorked / 12
		series.AverageHourlyRate += m.HourlyRate / 12
		series.AverageProfit += m.NetProfit / 12
	}
	return series
}

func (c *Calculator) periodMetrics(p finance.Period) Metrics {
	m := Metrics{
		Received:     c.received(p),
		Receivable:   c.receivable(p),
		ExpensesPaid: c.expensesPaid(p),
		HoursWorked:  c.hoursWorked(p),
	}
	m.NetProfit = m.Received - m.ExpensesPaid
	if m.HoursWorked > 0 {
		m.HourlyRate = m.Received / m.HoursWorked
	}
	return m
}

// received sums paid session values settled inside the period. Excused
// absences are pre-marked paid with no clinical delivery and are never
// revenue.
func (c *Calculator) received(p finance.Period) float64 {
	total := 0.0
	for _, s := range c.data.Sessions {
		if !s.Paid || s.Status == finance.SessionStatusExcusedAbsence {
			continue
		}
		if p.Contains(s.SettlementDate()) {
			total += s.Value
		}
	}
	return total
}

// receivable sums unpaid session values dated inside the period for
// sessions that actually generated a claim: delivered or missed without
// excuse. Scheduled sessions are not yet receivable.
func (c *Calculator) receivable(p finance.Period) float64 {
	total := 0.0
	for _, s := range c.data.Sessions {
		if s.Paid {
			continue
		}
		if s.Status != finance.SessionStatusCompleted && s.Status != finance.SessionStatusUnexcusedAbsence {
			continue
		}
		if p.Contains(s.Date) {
			total += s.Value
		}
	}
	return total
}

func (c *Calculator) expensesPaid(p finance.Period) float64 {
	total := 0.0
	for _, e := range c.data.Expenses {
		if e.Status != finance.ExpenseStatusPaid {
			continue
		}
		if p.Contains(e.SettlementDate()) {
			total += e.Value
		}
	}
	return total
}

func (c *Calculator) hoursWorked(p finance.Period) float64 {
	seen := finance.NewOccurrenceSet()
	total := 0.0
	for _, s := range c.data.Sessions {
		if !finance.EligibleForHours(s) || !p.Contains(s.Date) {
			continue
		}
		total += c.durations.SessionHours(s, seen)
	}
	return total
}

// CategoryBreakdown maps every known expense category to its paid total
// settled inside the year. Categories with no spending stay present
// with a zero total so proportion displays keep a stable key set.
func (c *Calculator) CategoryBreakdown(year int) map[string]float64 {
	p := finance.YearPeriod(year)
	totals := make(map[string]float64, len(c.data.Categories))
	for _, category := range c.data.Categories {
		totals[category] = 0
	}
	for _, e := range c.data.Expenses {
		if e.Status != finance.ExpenseStatusPaid {
			continue
		}
		if _, known := totals[e.Category]; !known {
			continue
		}
		if p.Contains(e.SettlementDate()) {
			totals[e.Category] += e.Value
		}
	}
	return totals
}

// SessionMix counts individual rows against deduplicated group
// occurrences among delivered-or-excused sessions dated in the year.
func (c *Calculator) SessionMix(year int) SessionMix {
	p := finance.YearPeriod(year)
	mix := SessionMix{}
	seen := finance.NewOccurrenceSet()
	for _, s := range c.data.Sessions {
		if !finance.EligibleForHours(s) || !p.Contains(s.Date) {
			continue
		}
		if s.IsGroup && s.GroupID != "" {
			seen.Seen(s)
			continue
		}
		mix.Individual++
	}
	mix.Group = seen.Len()
	return mix
}

// StatusCounts tallies session outcomes by session date within the year.
func (c *Calculator) StatusCounts(year int) StatusCounts {
	p := finance.YearPeriod(year)
	counts := StatusCounts{}
	for _, s := range c.data.Sessions {
		if !p.Contains(s.Date) {
			continue
		}
		switch s.Status {
		case finance.SessionStatusCompleted:
			counts.Completed++
		case finance.SessionStatusExcusedAbsence:
			counts.ExcusedAbsences++
		case finance.SessionStatusUnexcusedAbsence:
			counts.UnexcusedAbsences++
		}
	}
	return counts
}

// ModalityCounts tallies delivered-or-excused sessions by modality.
func (c *Calculator) ModalityCounts(year int) ModalityCounts {
	p := finance.YearPeriod(year)
	counts := ModalityCounts{}
	for _, s := range c.data.Sessions {
		if !finance.EligibleForHours(s) || !p.Contains(s.Date) {
			continue
		}
		switch s.Modality {
		case finance.ModalityInPerson:
			counts.InPerson++
		case finance.ModalityOnline:
			counts.Online++
		}
	}
	return counts
}

// GenderDistribution counts patients per declared gender. Patients
// without a declared gender land in the NotInformed bucket.
func (c *Calculator) GenderDistribution() GenderDistribution {
	dist := GenderDistribution{Counts: make(map[string]int)}
	for _, p := range c.data.Patients {
		if p.Gender == "" {
			dist.NotInformed++
			continue
		}
		dist.Counts[p.Gender]++
	}
	dist.Total = len(c.data.Patients)
	return dist
}

// ProfitComparison computes the monthly net profit of the year next to
// the preceding year, with twelve-month averages for both.
func (c *Calculator) ProfitComparison(year int) ProfitComparison {
	cmp := ProfitComparison{Year: year}
	for month := time.January; month <= time.December; month++ {
		current := c.monthProfit(year, month)
		previous := c.monthProfit(year-1, month)
		cmp.Current[month-1] = current
		cmp.Previous[month-1] = previous
		cmp.CurrentAverage += current / 12
		cmp.PreviousAverage += previous / 12
	}
	return cmp
}

func (c *Calculator) monthProfit(year int, month time.Month) float64 {
	p := finance.MonthPeriod(year, month)
	return c.received(p) - c.expensesPaid(p)
}
