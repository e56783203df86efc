package interfaces

import (
	"bytes"
	"testing"
	"time"

	"practice-cloud/internal/analytics/application"
	analytics "practice-cloud/internal/analytics/domain"
)

func fixtureReport() application.AnnualReport {
	report := application.AnnualReport{
		Year:    2024,
		Metrics: analytics.Metrics{Received: 300, ExpensesPaid: 100, NetProfit: 200, HoursWorked: 2},
		Receipts: analytics.ReceiptsTable{
			Year:       2024,
			Rows:       []analytics.ReceiptRow{{PatientID: "p1", PatientName: "Ana", Total: 300}},
			GrandTotal: 300,
		},
		Balance: analytics.BalanceTable{
			Year:            2024,
			Categories:      []string{"Aluguel"},
			TotalByCategory: map[string]float64{"Aluguel": 100},
			TotalRevenue:    300,
			TotalExpenses:   100,
			TotalProfit:     200,
		},
	}
	report.Receipts.Rows[0].Months[2] = 300
	report.Receipts.MonthTotals[2] = 300
	for month := time.January; month <= time.December; month++ {
		report.Balance.Rows = append(report.Balance.Rows, analytics.BalanceRow{
			Month:      month,
			ByCategory: map[string]float64{"Aluguel": 0},
		})
	}
	return report
}

func TestBuildAnnualReportPDF(t *testing.T) {
	data, err := BuildAnnualReportPDF(fixtureReport())
	if err != nil {
		t.Fatalf("build pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}

func TestBuildAnnualReportXLSX(t *testing.T) {
	data, err := BuildAnnualReportXLSX(fixtureReport())
	if err != nil {
		t.Fatalf("build xlsx: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty workbook")
	}
	// XLSX files are zip archives.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatal("output is not a zip container")
	}
}
