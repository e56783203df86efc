package analytics

import (
	"sort"
	"time"

	finance "practice-cloud/internal/finance/domain"
)

// deletedPatientName labels receipt rows whose patient record is gone.
const deletedPatientName = "(deleted patient)"

// GenderDistribution counts patients per declared gender.
type GenderDistribution struct {
	Counts      map[string]int `json:"counts"`
	NotInformed int            `json:"not_informed"`
	Total       int            `json:"total"`
}

// ReceiptRow is one patient's received totals per month plus the row
// total.
type ReceiptRow struct {
	PatientID   string      `json:"patient_id"`
	PatientName string      `json:"patient_name"`
	Months      [12]float64 `json:"months"`
	Total       float64     `json:"total"`
}

// ReceiptsTable is the per-patient, per-month received matrix for one
// year. Rows exclude patients with a zero yearly total; the column and
// grand totals cover every patient regardless.
type ReceiptsTable struct {
	Year        int          `json:"year"`
	Rows        []ReceiptRow `json:"rows"`
	MonthTotals [12]float64  `json:"month_totals"`
	GrandTotal  float64      `json:"grand_total"`
}

// PatientReceipts builds the receipts matrix: paid sessions settled in
// the year, excused absences excluded, bucketed by effective payment
// month. Group rows without a patient id are skipped.
func (c *Calculator) PatientReceipts(year int) ReceiptsTable {
	p := finance.YearPeriod(year)
	table := ReceiptsTable{Year: year}

	byPatient := make(map[string]*ReceiptRow)
	order := make([]string, 0)
	for _, s := range c.data.Sessions {
		if !s.Paid || s.Status == finance.SessionStatusExcusedAbsence || s.PatientID == "" {
			continue
		}
		settled := s.SettlementDate()
		if !p.Contains(settled) {
			continue
		}
		month, ok := monthOf(settled)
		if !ok {
			continue
		}
		row := byPatient[s.PatientID]
		if row == nil {
			row = &ReceiptRow{PatientID: s.PatientID, PatientName: deletedPatientName}
			if patient, found := c.patients[s.PatientID]; found {
				row.PatientName = patient.Name
			}
			byPatient[s.PatientID] = row
			order = append(order, s.PatientID)
		}
		row.Months[month-1] += s.Value
		row.Total += s.Value
		table.MonthTotals[month-1] += s.Value
		table.GrandTotal += s.Value
	}

	for _, id := range order {
		if row := byPatient[id]; row.Total > 0 {
			table.Rows = append(table.Rows, *row)
		}
	}
	sort.SliceStable(table.Rows, func(i, j int) bool {
		if table.Rows[i].PatientName != table.Rows[j].PatientName {
			return table.Rows[i].PatientName < table.Rows[j].PatientName
		}
		return table.Rows[i].PatientID < table.Rows[j].PatientID
	})
	return table
}

// BalanceRow is one month of the expense balance: revenue, per-category
// paid expenses, the expense total and share of revenue, and profit.
type BalanceRow struct {
	Month        time.Month         `json:"month"`
	Revenue      float64            `json:"revenue"`
	ByCategory   map[string]float64 `json:"by_category"`
	ExpenseTotal float64            `json:"expense_total"`
	ExpenseShare float64            `json:"expense_share"`
	Profit       float64            `json:"profit"`
}

// BalanceTable is the monthly expense balance for one year with a
// grand-total row.
type BalanceTable struct {
	Year            int                `json:"year"`
	Categories      []string           `json:"categories"`
	Rows            []BalanceRow       `json:"rows"`
	TotalRevenue    float64            `json:"total_revenue"`
	TotalByCategory map[string]float64 `json:"total_by_category"`
	TotalExpenses   float64            `json:"total_expenses"`
	TotalShare      float64            `json:"total_share"`
	TotalProfit     float64            `json:"total_profit"`
}

// ExpenseBalance builds the monthly revenue-versus-expenses balance.
// Every known category appears in every row, zero included.
func (c *Calculator) ExpenseBalance(year int) BalanceTable {
	categories := append([]string(nil), c.data.Categories...)
	sort.Strings(categories)

	table := BalanceTable{
		Year:            year,
		Categories:      categories,
		Rows:            make([]BalanceRow, 0, 12),
		TotalByCategory: make(map[string]float64, len(categories)),
	}
	for _, category := range categories {
		table.TotalByCategory[category] = 0
	}

	for month := time.January; month <= time.December; month++ {
		p := finance.MonthPeriod(year, month)
		row := BalanceRow{
			Month:      month,
			Revenue:    c.received(p),
			ByCategory: make(map[string]float64, len(categories)),
		}
		for _, category := range categories {
			row.ByCategory[category] = 0
		}
		for _, e := range c.data.Expenses {
			if e.Status != finance.ExpenseStatusPaid {
				continue
			}
			if _, known := row.ByCategory[e.Category]; !known {
				continue
			}
			if p.Contains(e.SettlementDate()) {
				row.ByCategory[e.Category] += e.Value
				row.ExpenseTotal += e.Value
				table.TotalByCategory[e.Category] += e.Value
			}
		}
		if row.Revenue > 0 {
			row.ExpenseShare = row.ExpenseTotal / row.Revenue * 100
		}
		row.Profit = row.Revenue - row.ExpenseTotal

		table.Rows = append(table.Rows, row)
		table.TotalRevenue += row.Revenue
		table.TotalExpenses += row.ExpenseTotal
		table.TotalProfit += row.Profit
	}
	if table.TotalRevenue > 0 {
		table.TotalShare = table.TotalExpenses / table.TotalRevenue * 100
	}
	return table
}

// monthOf extracts the calendar month from an ISO date.
func monthOf(date string) (time.Month, bool) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, false
	}
	return t.Month(), true
}
