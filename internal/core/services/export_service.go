package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crafterp/accounting/internal/core/domain"
	portssvc "github.com/crafterp/accounting/internal/core/ports/services"
	"github.com/xuri/excelize/v2"
)

type ExportService struct {
	BaseService
	reporting portssvc.ReportingService
}

// NewExportService creates the spreadsheet export service on top of the
// reporting service.
func NewExportService(reporting portssvc.ReportingService) *ExportService {
	return &ExportService{reporting: reporting}
}

// Ensure ExportService implements the ports interface
var _ portssvc.ExportService = (*ExportService)(nil)

// TrialBalanceWorkbook renders the trial balance for one period as an xlsx workbook.
func (s *ExportService) TrialBalanceWorkbook(ctx context.Context, organizationID, periodID string) ([]byte, error) {
	rows, err := s.reporting.TrialBalance(ctx, organizationID, periodID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Trial Balance"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Account Code", "Account Name", "Type", "Opening", "Debit", "Credit", "Closing"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		values := []interface{}{
			row.AccountCode,
			row.AccountName,
			string(row.AccountType),
			row.OpeningBalance.InexactFloat64(),
			row.TotalDebit.InexactFloat64(),
			row.TotalCredit.InexactFloat64(),
			row.ClosingBalance.InexactFloat64(),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.LogError(ctx, err, "Failed to render trial balance workbook", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ProfitAndLossWorkbook renders the income statement for one period as an xlsx workbook.
func (s *ExportService) ProfitAndLossWorkbook(ctx context.Context, organizationID, periodID string) ([]byte, error) {
	report, err := s.reporting.ProfitAndLoss(ctx, organizationID, periodID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Profit and Loss"
	f.SetSheetName("Sheet1", sheet)

	row := 1
	writeSection := func(title string, amounts []domain.AccountAmount) {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), title)
		row++
		for _, a := range amounts {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), a.AccountCode)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), a.Name)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), a.NetAmount.InexactFloat64())
			row++
		}
	}
	writeTotal := func(label string, value float64) {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), label)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), value)
		row++
	}

	writeSection("Revenue", report.Revenue)
	writeTotal("Total Revenue", report.TotalRevenue.InexactFloat64())
	writeSection("Cost of Goods Sold", report.CostOfGoodsSold)
	writeTotal("Total COGS", report.TotalCOGS.InexactFloat64())
	writeTotal("Gross Profit", report.GrossProfit.InexactFloat64())
	writeSection("Operating Expenses", report.OperatingExpenses)
	writeTotal("Total Operating Expenses", report.TotalOpex.InexactFloat64())
	writeTotal("Operating Income", report.OperatingIncome.InexactFloat64())
	writeTotal("Net Income", report.NetIncome.InexactFloat64())
	writeTotal("Gross Margin %", report.GrossMarginPct.InexactFloat64())
	writeTotal("Net Margin %", report.NetMarginPct.InexactFloat64())

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.LogError(ctx, err, "Failed to render profit and loss workbook", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}
