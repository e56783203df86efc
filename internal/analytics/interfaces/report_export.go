package interfaces

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"practice-cloud/internal/analytics/application"
)

var monthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// BuildAnnualReportPDF renders the printable annual report.
func BuildAnnualReportPDF(report application.AnnualReport) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, fmt.Sprintf("Annual Report %d", report.Year))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Received: %.2f", report.Metrics.Received))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Receivable: %.2f", report.Metrics.Receivable))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Expenses: %.2f", report.Metrics.ExpensesPaid))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Net Profit: %.2f", report.Metrics.NetProfit))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Hours Worked: %.1f", report.Metrics.HoursWorked))
	pdf.Ln(8)

	// Receipts matrix
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(50, 6, "Patient", "1", 0, "L", false, 0, "")
	for _, label := range monthLabels {
		pdf.CellFormat(16, 6, label, "1", 0, "C", false, 0, "")
	}
	pdf.CellFormat(22, 6, "Total", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, row := range report.Receipts.Rows {
		pdf.CellFormat(50, 6, row.PatientName, "1", 0, "L", false, 0, "")
		for _, value := range row.Months {
			pdf.CellFormat(16, 6, fmt.Sprintf("%.2f", value), "1", 0, "R", false, 0, "")
		}
		pdf.CellFormat(22, 6, fmt.Sprintf("%.2f", row.Total), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(50, 6, "Total", "1", 0, "L", false, 0, "")
	for _, value := range report.Receipts.MonthTotals {
		pdf.CellFormat(16, 6, fmt.Sprintf("%.2f", value), "1", 0, "R", false, 0, "")
	}
	pdf.CellFormat(22, 6, fmt.Sprintf("%.2f", report.Receipts.GrandTotal), "1", 0, "R", false, 0, "")
	pdf.Ln(10)

	// Expense balance
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(20, 6, "Month", "1", 0, "L", false, 0, "")
	pdf.CellFormat(24, 6, "Revenue", "1", 0, "C", false, 0, "")
	for _, category := range report.Balance.Categories {
		pdf.CellFormat(24, 6, category, "1", 0, "C", false, 0, "")
	}
	pdf.CellFormat(24, 6, "Expenses", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Share %", "1", 0, "C", false, 0, "")
	pdf.CellFormat(24, 6, "Profit", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, row := range report.Balance.Rows {
		pdf.CellFormat(20, 6, monthLabels[row.Month-1], "1", 0, "L", false, 0, "")
		pdf.CellFormat(24, 6, fmt.Sprintf("%.2f", row.Revenue), "1", 0, "R", false, 0, "")
		for _, category := range report.Balance.Categories {
			pdf.CellFormat(24, 6, fmt.Sprintf("%.2f", row.ByCategory[category]), "1", 0, "R", false, 0, "")
		}
		pdf.CellFormat(24, 6, fmt.Sprintf("%.2f", row.ExpenseTotal), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%.1f", row.ExpenseShare), "1", 0, "R", false, 0, "")
		pdf.CellFormat(24, 6, fmt.Sprintf("%.2f", row.Profit), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(20, 6, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(24, 6, fmt.Sprintf("%.2f", report.Balance.TotalRevenue), "1", 0, "R", false, 0, "")
	for _, category := range report.Balance.Categories {
		pdf.CellFormat(24, 6, fmt.Sprintf("%.2f", report.Balance.TotalByCategory[category]), "1", 0, "R", false, 0, "")
	}
	pdf.CellFormat(24, 6, fmt.Sprintf("%.2f", report.Balance.TotalExpenses), "1", 0, "R", false, 0, "")
	pdf.CellFormat(20, 6, fmt.Sprintf("%.1f", report.Balance.TotalShare), "1", 0, "R", false, 0, "")
	pdf.CellFormat(24, 6, fmt.Sprintf("%.2f", report.Balance.TotalProfit), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildAnnualReportXLSX renders the annual report as a workbook with a
// summary sheet, the receipts matrix and the expense balance.
func BuildAnnualReportXLSX(report application.AnnualReport) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	receiptsSheet := "receipts"
	balanceSheet := "balance"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(receiptsSheet)
	f.NewSheet(balanceSheet)

	_ = f.SetCellValue(summarySheet, "A1", fmt.Sprintf("Annual Report %d", report.Year))
	_ = f.SetCellValue(summarySheet, "A3", "Received")
	_ = f.SetCellValue(summarySheet, "B3", report.Metrics.Received)
	_ = f.SetCellValue(summarySheet, "A4", "Receivable")
	_ = f.SetCellValue(summarySheet, "B4", report.Metrics.Receivable)
	_ = f.SetCellValue(summarySheet, "A5", "Expenses")
	_ = f.SetCellValue(summarySheet, "B5", report.Metrics.ExpensesPaid)
	_ = f.SetCellValue(summarySheet, "A6", "Net Profit")
	_ = f.SetCellValue(summarySheet, "B6", report.Metrics.NetProfit)
	_ = f.SetCellValue(summarySheet, "A7", "Hours Worked")
	_ = f.SetCellValue(summarySheet, "B7", report.Metrics.HoursWorked)
	_ = f.SetCellValue(summarySheet, "A8", "Hourly Rate")
	_ = f.SetCellValue(summarySheet, "B8", report.Metrics.HourlyRate)

	_ = f.SetCellValue(receiptsSheet, "A1", "Patient")
	for i, label := range monthLabels {
		cell, _ := excelize.CoordinatesToCellName(i+2, 1)
		_ = f.SetCellValue(receiptsSheet, cell, label)
	}
	totalCell, _ := excelize.CoordinatesToCellName(14, 1)
	_ = f.SetCellValue(receiptsSheet, totalCell, "Total")
	for r, row := range report.Receipts.Rows {
		_ = f.SetCellValue(receiptsSheet, fmt.Sprintf("A%d", r+2), row.PatientName)
		for m, value := range row.Months {
			cell, _ := excelize.CoordinatesToCellName(m+2, r+2)
			_ = f.SetCellValue(receiptsSheet, cell, value)
		}
		cell, _ := excelize.CoordinatesToCellName(14, r+2)
		_ = f.SetCellValue(receiptsSheet, cell, row.Total)
	}
	totalsRow := len(report.Receipts.Rows) + 2
	_ = f.SetCellValue(receiptsSheet, fmt.Sprintf("A%d", totalsRow), "Total")
	for m, value := range report.Receipts.MonthTotals {
		cell, _ := excelize.CoordinatesToCellName(m+2, totalsRow)
		_ = f.SetCellValue(receiptsSheet, cell, value)
	}
	grandCell, _ := excelize.CoordinatesToCellName(14, totalsRow)
	_ = f.SetCellValue(receiptsSheet, grandCell, report.Receipts.GrandTotal)

	_ = f.SetCellValue(balanceSheet, "A1", "Month")
	_ = f.SetCellValue(balanceSheet, "B1", "Revenue")
	for i, category := range report.Balance.Categories {
		cell, _ := excelize.CoordinatesToCellName(i+3, 1)
		_ = f.SetCellValue(balanceSheet, cell, category)
	}
	base := len(report.Balance.Categories) + 3
	for i, header := range []string{"Expenses", "Share %", "Profit"} {
		cell, _ := excelize.CoordinatesToCellName(base+i, 1)
		_ = f.SetCellValue(balanceSheet, cell, header)
	}
	for r, row := range report.Balance.Rows {
		_ = f.SetCellValue(balanceSheet, fmt.Sprintf("A%d", r+2), monthLabels[row.Month-1])
		_ = f.SetCellValue(balanceSheet, fmt.Sprintf("B%d", r+2), row.Revenue)
		for i, category := range report.Balance.Categories {
			cell, _ := excelize.CoordinatesToCellName(i+3, r+2)
			_ = f.SetCellValue(balanceSheet, cell, row.ByCategory[category])
		}
		for i, value := range []float64{row.ExpenseTotal, row.ExpenseShare, row.Profit} {
			cell, _ := excelize.CoordinatesToCellName(base+i, r+2)
			_ = f.SetCellValue(balanceSheet, cell, value)
		}
	}
	balanceTotals := len(report.Balance.Rows) + 2
	_ = f.SetCellValue(balanceSheet, fmt.Sprintf("A%d", balanceTotals), "Total")
	_ = f.SetCellValue(balanceSheet, fmt.Sprintf("B%d", balanceTotals), report.Balance.TotalRevenue)
	for i, category := range report.Balance.Categories {
		cell, _ := excelize.CoordinatesToCellName(i+3, balanceTotals)
		_ = f.SetCellValue(balanceSheet, cell, report.Balance.TotalByCategory[category])
	}
	for i, value := range []float64{report.Balance.TotalExpenses, report.Balance.TotalShare, report.Balance.TotalProfit} {
		cell, _ := excelize.CoordinatesToCellName(base+i, balanceTotals)
		_ = f.SetCellValue(balanceSheet, cell, value)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
