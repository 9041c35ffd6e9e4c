package analytics

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// summaryStats はレポート本文に載せる主要6指標。
type summaryStats struct {
	ActiveVehicles  int64
	ActiveRentals   int64
	PartsInStock    int64
	MonthlyIncome   decimal.Decimal
	MonthlyExpenses decimal.Decimal
	MonthlyProfit   decimal.Decimal
}

var amountPrinter = message.NewPrinter(language.English)

// 1,234,567.89 形式
func formatAmount(d decimal.Decimal) string {
	f, _ := d.Float64()
	return amountPrinter.Sprintf("%.2f", f)
}

func (s summaryStats) rows() [][2]string {
	return [][2]string{
		{"Active vehicles", fmt.Sprintf("%d", s.ActiveVehicles)},
		{"Active rentals", fmt.Sprintf("%d", s.ActiveRentals)},
		{"Parts in stock", fmt.Sprintf("%d", s.PartsInStock)},
		{"Income this month", formatAmount(s.MonthlyIncome)},
		{"Expenses this month", formatAmount(s.MonthlyExpenses)},
		{"Profit this month", formatAmount(s.MonthlyProfit)},
	}
}

func renderPDF(sum summaryStats, asOf time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 12, "Business Performance Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 8, "Generated on "+asOf.Format("2006-01-02"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(110, 9, "Metric", "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 9, "Value", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range sum.rows() {
		pdf.CellFormat(110, 9, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 9, row[1], "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderExcel(sum summaryStats, monthly AnalyticsResponse, asOf time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	f.SetSheetName("Sheet1", summarySheet)

	f.SetCellValue(summarySheet, "A1", "Business Performance Report")
	f.SetCellValue(summarySheet, "A2", "Generated on "+asOf.Format("2006-01-02"))
	f.SetCellValue(summarySheet, "A4", "Metric")
	f.SetCellValue(summarySheet, "B4", "Value")
	for i, row := range sum.rows() {
		cell := 5 + i
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", cell), row[0])
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", cell), row[1])
	}

	const monthlySheet = "Monthly"
	if _, err := f.NewSheet(monthlySheet); err != nil {
		return nil, err
	}
	for i, h := range []string{"Month", "Income", "Expenses", "Profit"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(monthlySheet, cell, h)
	}
	for i, label := range monthly.Months {
		row := i + 2
		f.SetCellValue(monthlySheet, fmt.Sprintf("A%d", row), label)
		f.SetCellValue(monthlySheet, fmt.Sprintf("B%d", row), monthly.Income[i].InexactFloat64())
		f.SetCellValue(monthlySheet, fmt.Sprintf("C%d", row), monthly.Expenses[i].InexactFloat64())
		f.SetCellValue(monthlySheet, fmt.Sprintf("D%d", row), monthly.Profit[i].InexactFloat64())
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
