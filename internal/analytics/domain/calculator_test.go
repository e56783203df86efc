package analytics

import (
	"math"
	"reflect"
	"testing"

	finance "practice-cloud/internal/finance/domain"
)

func fixtureDataset() Dataset {
	return Dataset{
		Patients: []finance.Patient{
			{ID: "p1", Name: "Ana", ServiceTypeID: "st-ind", Gender: "female"},
			{ID: "p2", Name: "Bruno", ServiceTypeID: "st-ind", Gender: "male"},
			{ID: "p3", Name: "Clara", ServiceTypeID: "st-ind"},
		},
		Groups: []finance.Group{
			{ID: "g1", Name: "Evening group", ServiceTypeID: "st-grp", Participants: []string{"p1", "p2"}, Active: true},
		},
		ServiceTypes: []finance.ServiceType{
			{ID: "st-ind", Name: "Individual", Duration: 60},
			{ID: "st-grp", Name: "Group", Duration: 90},
		},
		Categories: []string{"rent", "internet", "materials"},
		Sessions: []finance.Session{
			// Paid individual session, settled in March via payment date.
			{ID: "s1", PatientID: "p1", Date: "2024-02-28", PaymentDate: "2024-03-05", Status: finance.SessionStatusCompleted, Modality: finance.ModalityInPerson, Value: 150, Paid: true},
			// Paid individual session, settlement falls back to the session date.
			{ID: "s2", PatientID: "p2", Date: "2024-04-10", Status: finance.SessionStatusCompleted, Modality: finance.ModalityOnline, Value: 200, Paid: true},
			// Excused absence: pre-marked paid, zero revenue, hours still count.
			{ID: "s3", PatientID: "p1", Date: "2024-04-17", Status: finance.SessionStatusExcusedAbsence, Modality: finance.ModalityInPerson, Value: 150, Paid: true},
			// Unpaid completed session: receivable.
			{ID: "s4", PatientID: "p2", Date: "2024-05-08", Status: finance.SessionStatusCompleted, Modality: finance.ModalityInPerson, Value: 200, Paid: false},
			// Unpaid unexcused absence: receivable, no hours.
			{ID: "s5", PatientID: "p1", Date: "2024-05-15", Status: finance.SessionStatusUnexcusedAbsence, Value: 150, Paid: false},
			// Scheduled session: not receivable yet.
			{ID: "s6", PatientID: "p1", Date: "2024-11-20", Status: finance.SessionStatusScheduled, Value: 150, Paid: false},
			// One group occurrence, two participant rows.
			{ID: "s7", GroupID: "g1", IsGroup: true, Date: "2024-06-05", Time: "19:00", EndTime: "20:30", Status: finance.SessionStatusCompleted, Modality: finance.ModalityInPerson, Value: 80, Paid: false},
			{ID: "s8", GroupID: "g1", IsGroup: true, Date: "2024-06-05", Time: "19:00", EndTime: "20:30", Status: finance.SessionStatusCompleted, Modality: finance.ModalityInPerson, Value: 80, Paid: false},
			// Prior-year paid session must never leak into 2024.
			{ID: "s9", PatientID: "p1", Date: "2023-12-20", Status: finance.SessionStatusCompleted, Value: 100, Paid: true},
		},
		Expenses: []finance.Expense{
			{ID: "e1", Description: "office rent", Value: 120, Date: "2024-03-01", Category: "rent", Status: finance.ExpenseStatusPaid},
			{ID: "e2", Description: "fiber", Value: 30, Date: "2024-03-20", PaymentDate: "2024-04-02", Category: "internet", Status: finance.ExpenseStatusPaid},
			{ID: "e3", Description: "chairs", Value: 500, Date: "2024-05-10", Category: "materials", Status: finance.ExpenseStatusPending},
		},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestYearMetrics(t *testing.T) {
	c := NewCalculator(fixtureDataset())
	m := c.YearMetrics(2024)

	if !almostEqual(m.Received, 350) {
		t.Fatalf("received: got %v, want 350", m.Received)
	}
	if !almostEqual(m.Receivable, 510) {
		t.Fatalf("receivable: got %v, want 510", m.Receivable)
	}
	if !almostEqual(m.ExpensesPaid, 150) {
		t.Fatalf("expenses paid: got %v, want 150", m.ExpensesPaid)
	}
	if !almostEqual(m.NetProfit, 200) {
		t.Fatalf("net profit: got %v, want 200", m.NetProfit)
	}
	// s1..s4 individual hours (4 x 60min) plus one group occurrence (90min);
	// payment state does not gate hours.
	if !almostEqual(m.HoursWorked, 5.5) {
		t.Fatalf("hours worked: got %v, want 5.5", m.HoursWorked)
	}
	if !almostEqual(m.HourlyRate, 350/5.5) {
		t.Fatalf("hourly rate: got %v, want %v", m.HourlyRate, 350/5.5)
	}
}

func TestMonthlySeriesSumsToYear(t *testing.T) {
	c := NewCalculator(fixtureDataset())
	year := c.YearMetrics(2024)
	series := c.MonthlySeries(2024)

	if len(series.Months) != 12 {
		t.Fatalf("months: got %d, want 12", len(series.Months))
	}
	var received, receivable, expenses, hours float64
	for _, m := range series.Months {
		received += m.Received
		receivable += m.Receivable
		expenses += m.ExpensesPaid
		hours += m.HoursWorked
	}
	if !almostEqual(received, year.Received) {
		t.Fatalf("received across months: got %v, want %v", received, year.Received)
	}
	if !almostEqual(receivable, year.Receivable) {
		t.Fatalf("receivable across months: got %v, want %v", receivable, year.Receivable)
	}
	if !almostEqual(expenses, year.ExpensesPaid) {
		t.Fatalf("expenses across months: got %v, want %v", expenses, year.ExpensesPaid)
	}
	if !almostEqual(hours, year.HoursWorked) {
		t.Fatalf("hours across months: got %v, want %v", hours, year.HoursWorked)
	}
}

func TestHourlyRateZeroWithoutHours(t *testing.T) {
	data := Dataset{
		Sessions: []finance.Session{
			// Paid but the patient has no service type: revenue without hours.
			{ID: "s1", PatientID: "p-gone", Date: "2024-01-10", Status: finance.SessionStatusCompleted, Value: 500, Paid: true},
		},
	}
	m := NewCalculator(data).YearMetrics(2024)
	if m.Received != 500 {
		t.Fatalf("received: got %v, want 500", m.Received)
	}
	if m.HoursWorked != 0 || m.HourlyRate != 0 {
		t.Fatalf("hourly rate without hours: got rate %v hours %v, want 0/0", m.HourlyRate, m.HoursWorked)
	}
}

func TestAggregationIdempotence(t *testing.T) {
	data := fixtureDataset()
	first := NewCalculator(data)
	second := NewCalculator(data)

	if !reflect.DeepEqual(first.YearMetrics(2024), second.YearMetrics(2024)) {
		t.Fatal("year metrics differ across identical runs")
	}
	if !reflect.DeepEqual(first.MonthlySeries(2024), second.MonthlySeries(2024)) {
		t.Fatal("monthly series differ across identical runs")
	}
	if !reflect.DeepEqual(first.PatientReceipts(2024), second.PatientReceipts(2024)) {
		t.Fatal("receipts tables differ across identical runs")
	}
	if !reflect.DeepEqual(first.ExpenseBalance(2024), second.ExpenseBalance(2024)) {
		t.Fatal("balance tables differ across identical runs")
	}
}

func TestCategoryBreakdownKeepsZeroCategories(t *testing.T) {
	c := NewCalculator(fixtureDataset())
	breakdown := c.CategoryBreakdown(2024)

	if len(breakdown) != 3 {
		t.Fatalf("categories: got %d, want 3", len(breakdown))
	}
	if got, ok := breakdown["materials"]; !ok || got != 0 {
		t.Fatalf("materials must be present with zero total, got %v (present=%v)", got, ok)
	}
	if !almostEqual(breakdown["rent"], 120) {
		t.Fatalf("rent: got %v, want 120", breakdown["rent"])
	}
	if !almostEqual(breakdown["internet"], 30) {
		t.Fatalf("internet: got %v, want 30", breakdown["internet"])
	}
}

func TestPatientReceipts(t *testing.T) {
	c := NewCalculator(fixtureDataset())
	table := c.PatientReceipts(2024)

	// p3 had no receipts and the excused absence adds nothing: two rows.
	if len(table.Rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(table.Rows))
	}
	if table.Rows[0].PatientName != "Ana" || table.Rows[1].PatientName != "Bruno" {
		t.Fatalf("rows not sorted by name: %q, %q", table.Rows[0].PatientName, table.Rows[1].PatientName)
	}
	// s1 settled in March via its payment date, not February.
	if !almostEqual(table.Rows[0].Months[2], 150) || table.Rows[0].Months[1] != 0 {
		t.Fatalf("payment-month bucketing wrong: %v", table.Rows[0].Months)
	}
	if !almostEqual(table.MonthTotals[3], 200) {
		t.Fatalf("april column total: got %v, want 200", table.MonthTotals[3])
	}
	if !almostEqual(table.GrandTotal, 350) {
		t.Fatalf("grand total: got %v, want 350", table.GrandTotal)
	}
}

func TestSessionMixDeduplicatesGroups(t *testing.T) {
	c := NewCalculator(fixtureDataset())
	mix := c.SessionMix(2024)
	// s1..s4 individual (completed or excused); s7+s8 share one occurrence.
	if mix.Individual != 4 || mix.Group != 1 {
		t.Fatalf("mix: got %+v, want individual 4 group 1", mix)
	}
}

func TestStatusAndModalityCounts(t *testing.T) {
	c := NewCalculator(fixtureDataset())

	status := c.StatusCounts(2024)
	if status.Completed != 5 || status.ExcusedAbsences != 1 || status.UnexcusedAbsences != 1 {
		t.Fatalf("status counts: got %+v", status)
	}

	modality := c.ModalityCounts(2024)
	if modality.InPerson != 5 || modality.Online != 1 {
		t.Fatalf("modality counts: got %+v", modality)
	}
}

func TestGenderDistribution(t *testing.T) {
	c := NewCalculator(fixtureDataset())
	dist := c.GenderDistribution()
	if dist.Total != 3 || dist.NotInformed != 1 {
		t.Fatalf("distribution: got %+v", dist)
	}
	if dist.Counts["female"] != 1 || dist.Counts["male"] != 1 {
		t.Fatalf("counts: got %+v", dist.Counts)
	}
}

func TestProfitComparison(t *testing.T) {
	c := NewCalculator(fixtureDataset())
	cmp := c.ProfitComparison(2024)

	// March 2024: 150 received, 120 rent paid.
	if !almostEqual(cmp.Current[2], 30) {
		t.Fatalf("march profit: got %v, want 30", cmp.Current[2])
	}
	// December 2023 carried the prior-year receipt.
	if !almostEqual(cmp.Previous[11], 100) {
		t.Fatalf("prior december profit: got %v, want 100", cmp.Previous[11])
	}
	var sum float64
	for _, v := range cmp.Current {
		sum += v
	}
	if !almostEqual(cmp.CurrentAverage, sum/12) {
		t.Fatalf("average: got %v, want %v", cmp.CurrentAverage, sum/12)
	}
}

func TestExpenseBalance(t *testing.T) {
	c := NewCalculator(fixtureDataset())
	table := c.ExpenseBalance(2024)

	if len(table.Rows) != 12 {
		t.Fatalf("rows: got %d, want 12", len(table.Rows))
	}
	if !reflect.DeepEqual(table.Categories, []string{"internet", "materials", "rent"}) {
		t.Fatalf("categories not sorted: %v", table.Categories)
	}

	march := table.Rows[2]
	if !almostEqual(march.Revenue, 150) || !almostEqual(march.ExpenseTotal, 120) {
		t.Fatalf("march row: %+v", march)
	}
	if !almostEqual(march.ExpenseShare, 80) {
		t.Fatalf("march share: got %v, want 80", march.ExpenseShare)
	}
	if !almostEqual(march.Profit, 30) {
		t.Fatalf("march profit: got %v, want 30", march.Profit)
	}
	if got, ok := march.ByCategory["materials"]; !ok || got != 0 {
		t.Fatalf("zero category missing from row: %v (present=%v)", got, ok)
	}

	var revenue, expenses float64
	for _, row := range table.Rows {
		revenue += row.Revenue
		expenses += row.ExpenseTotal
	}
	if !almostEqual(table.TotalRevenue, revenue) || !almostEqual(table.TotalExpenses, expenses) {
		t.Fatalf("totals inconsistent: %+v", table)
	}
	if !almostEqual(table.TotalProfit, revenue-expenses) {
		t.Fatalf("total profit: got %v, want %v", table.TotalProfit, revenue-expenses)
	}
}
