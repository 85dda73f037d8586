package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"finance-service/src/internal/repository"
	"finance-service/src/pkg/log"
	"finance-service/src/pkg/utils"

	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary = "Summary"
	SheetLedger  = "Ledger"
)

var ledgerHeaders = []string{
	"ID", "Date", "Type", "Amount", "Company Revenue", "Company Expense",
	"Payment Method", "Driver", "Driver Type", "Category", "Description", "Processed By",
}

// ExportUseCase renders a financial report and the ledger lines behind it
// as an XLSX workbook.
type ExportUseCase struct {
	Log              log.Log
	ReportUseCase    *ReportUseCase
	LedgerRepository *repository.LedgerRepository
}

func NewExportUseCase(logger log.Log, reportUseCase *ReportUseCase, ledgerRepository *repository.LedgerRepository) *ExportUseCase {
	return &ExportUseCase{
		Log:              logger,
		ReportUseCase:    reportUseCase,
		LedgerRepository: ledgerRepository,
	}
}

func (c *ExportUseCase) ExportFinancialReport(ctx context.Context, startDate, endDate time.Time, w io.Writer) error {
	report, err := c.ReportUseCase.GetFinancialReport(ctx, startDate, endDate)
	if err != nil {
		return err
	}
	records, err := c.LedgerRepository.FindByDateRange(ctx, report.StartDate, report.EndDate)
	if err != nil {
		return &PersistenceError{Op: "read ledger", Err: err}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}
	summary := [][]any{
		{"Start Date", report.StartDate.Format(utils.DateLayout)},
		{"End Date", report.EndDate.Format(utils.DateLayout)},
		{"Revenue", report.Revenue.Total.InexactFloat64()},
		{"Cash Revenue", report.Revenue.Cash.InexactFloat64()},
		{"Card Revenue", report.Revenue.Card.InexactFloat64()},
		{"Driver Payments", report.Expenses.DriverPayments.InexactFloat64()},
		{"Manual Expenses", report.Expenses.ManualExpenses.InexactFloat64()},
		{"Total Expenses", report.Expenses.Total.InexactFloat64()},
		{"Driver Collections", report.DriverCollections.InexactFloat64()},
		{"Driver Earnings", report.DriverEarnings.InexactFloat64()},
		{"Net Profit", report.NetProfit.InexactFloat64()},
		{"Records", report.RecordCount},
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(SheetLedger); err != nil {
		return err
	}
	for i, header := range ledgerHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SheetLedger, cell, header)
	}
	for i, r := range records {
		row := []any{
			r.ID, r.Date.In(c.ReportUseCase.Location).Format("2006-01-02 15:04"), string(r.Type), r.Amount,
			r.CompanyRevenue, r.CompanyExpense, string(r.PaymentMethod), r.DriverName,
			string(r.DriverType), r.Category, r.Description, r.ProcessedBy,
		}
		if err := f.SetSheetRow(SheetLedger, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		c.Log.Error("export-usecase", err.Error(), "ExportFinancialReport", "")
		return err
	}
	return nil
}
