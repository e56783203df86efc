package application

import (
	"context"
	"testing"

	finapp "practice-cloud/internal/finance/application"
	finance "practice-cloud/internal/finance/domain"
	"practice-cloud/internal/finance/infrastructure/memory"
)

func fixtureStore() *memory.RecordStore {
	sessions := []finance.Session{
		{ID: "s1", PatientID: "p1", Date: "2024-01-10", Status: finance.SessionStatusCompleted, Value: 150, Paid: true, PaymentDate: "2024-01-12", Modality: finance.ModalityInPerson},
		{ID: "s2", PatientID: "p1", Date: "2024-02-07", Status: finance.SessionStatusCompleted, Value: 150, Paid: false, Modality: finance.ModalityInPerson},
		{ID: "s3", PatientID: "p2", Date: "2024-02-14", Status: finance.SessionStatusExcusedAbsence, Value: 150, Paid: true, PaymentDate: "2024-02-14", Modality: finance.ModalityOnline},
	}
	expenses := []finance.Expense{
		{ID: "e1", Description: "office rent", Value: 100, Date: "2024-01-05", Category: "Aluguel", Status: finance.ExpenseStatusPaid, PaymentDate: "2024-01-05"},
	}
	patients := []finance.Patient{
		{ID: "p1", Name: "Ana", ServiceTypeID: "st_1", Gender: "female"},
		{ID: "p2", Name: "Bruno", ServiceTypeID: "st_1"},
	}
	return memory.NewRecordStore(sessions, expenses, patients, nil, nil)
}

func TestDashboardComputesYear(t *testing.T) {
	svc, err := NewDashboardService(fixtureStore(), finapp.DefaultSettings())
	if err != nil {
		t.Fatalf("new dashboard service: %v", err)
	}

	dashboard, err := svc.Dashboard(context.Background(), 2024)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dashboard.Metrics.Received != 150 {
		t.Fatalf("received: got %v, want 150", dashboard.Metrics.Received)
	}
	if dashboard.Metrics.Receivable != 150 {
		t.Fatalf("receivable: got %v, want 150", dashboard.Metrics.Receivable)
	}
	if dashboard.Metrics.NetProfit != 50 {
		t.Fatalf("net profit: got %v, want 50", dashboard.Metrics.NetProfit)
	}
	if len(dashboard.Series.Months) != 12 {
		t.Fatalf("months: got %d, want 12", len(dashboard.Series.Months))
	}
	// Service types come from settings when the store holds none, so the
	// completed sessions still count hours via the default 50 minutes.
	if dashboard.Metrics.HoursWorked == 0 {
		t.Fatal("hours worked should use settings service types")
	}
	if dashboard.Genders.Total != 2 || dashboard.Genders.NotInformed != 1 {
		t.Fatalf("genders: %+v", dashboard.Genders)
	}
	if _, ok := dashboard.CategoryBreakdown["Outros"]; !ok {
		t.Fatal("category breakdown must include zero categories")
	}
}

func TestAnnualReportTables(t *testing.T) {
	svc, err := NewDashboardService(fixtureStore(), finapp.DefaultSettings())
	if err != nil {
		t.Fatalf("new dashboard service: %v", err)
	}

	report, err := svc.AnnualReport(context.Background(), 2024)
	if err != nil {
		t.Fatalf("annual report: %v", err)
	}
	if len(report.Receipts.Rows) != 1 || report.Receipts.Rows[0].PatientName != "Ana" {
		t.Fatalf("receipts: %+v", report.Receipts.Rows)
	}
	if report.Balance.TotalExpenses != 100 {
		t.Fatalf("balance expenses: got %v, want 100", report.Balance.TotalExpenses)
	}
}

func TestMonthMetricsRange(t *testing.T) {
	svc, err := NewDashboardService(fixtureStore(), finapp.DefaultSettings())
	if err != nil {
		t.Fatalf("new dashboard service: %v", err)
	}

	m, err := svc.MonthMetrics(context.Background(), 2024, 1)
	if err != nil {
		t.Fatalf("month metrics: %v", err)
	}
	if m.Received != 150 {
		t.Fatalf("january received: got %v, want 150", m.Received)
	}
	if _, err := svc.MonthMetrics(context.Background(), 2024, 13); err == nil {
		t.Fatal("expected error for month 13")
	}
}
