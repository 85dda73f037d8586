package usecase

import (
	"time"

	"finance-service/src/internal/entity"
	"finance-service/src/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func foldCompanyStatus(records []entity.LedgerRecord) model.CompanyFinancialStatus {
	var s model.CompanyFinancialStatus
	for _, r := range records {
		switch r.Type {
		case entity.LedgerReservationCompletion:
			revenue := money(r.CompanyRevenue)
			s.TotalRevenue = s.TotalRevenue.Add(revenue)
			s.TotalExpense = s.TotalExpense.Add(money(r.CompanyExpense))
			switch r.PaymentMethod {
			case entity.PaymentCash:
				s.CashRevenue = s.CashRevenue.Add(revenue)
			case entity.PaymentCard:
				s.CardRevenue = s.CardRevenue.Add(revenue)
			}
		case entity.LedgerDriverPayment:
			s.TotalDriverPayments = s.TotalDriverPayments.Add(money(r.Amount))
			s.TotalExpense = s.TotalExpense.Add(money(r.Amount))
		case entity.LedgerDriverCollection:
			s.TotalDriverCollections = s.TotalDriverCollections.Add(money(r.Amount))
		case entity.LedgerManualExpense:
			s.TotalManualExpenses = s.TotalManualExpenses.Add(money(r.Amount))
		}
		s.RecordCount++
	}
	s.NetProfit = s.TotalRevenue.Sub(s.TotalExpense)
	s.CashFlow = s.CardRevenue.Add(s.TotalDriverCollections).Sub(s.TotalDriverPayments)
	if !s.TotalRevenue.IsZero() {
		s.ProfitMargin = s.NetProfit.Div(s.TotalRevenue).Mul(hundred).Round(2)
	}
	return s
}

func foldReport(records []entity.LedgerRecord, start, end time.Time) model.FinancialReport {
	report := model.FinancialReport{StartDate: start, EndDate: end}
	for _, r := range records {
		switch r.Type {
		case entity.LedgerReservationCompletion:
			revenue := money(r.CompanyRevenue)
			report.Revenue.Total = report.Revenue.Total.Add(revenue)
			switch r.PaymentMethod {
			case entity.PaymentCash:
				report.Revenue.Cash = report.Revenue.Cash.Add(revenue)
			case entity.PaymentCard:
				report.Revenue.Card = report.Revenue.Card.Add(revenue)
			}
			report.DriverEarnings = report.DriverEarnings.Add(money(r.CompanyExpense))
		case entity.LedgerDriverPayment:
			report.Expenses.DriverPayments = report.Expenses.DriverPayments.Add(money(r.Amount))
		case entity.LedgerManualExpense:
			report.Expenses.ManualExpenses = report.Expenses.ManualExpenses.Add(money(r.Amount))
		case entity.LedgerDriverCollection:
			report.DriverCollections = report.DriverCollections.Add(money(r.Amount))
		}
		report.RecordCount++
	}
	report.Expenses.Total = report.Expenses.DriverPayments.Add(report.Expenses.ManualExpenses)
	report.NetProfit = report.Revenue.Total.Add(report.DriverCollections).Sub(report.Expenses.Total)
	return report
}

// foldDriverSummary nets what a driver earned against what was paid out
// and collected. Records of other drivers are ignored.
func foldDriverSummary(records []entity.LedgerRecord, driverID string, driverType entity.DriverType) model.DriverFinancialSummary {
	summary := model.DriverFinancialSummary{DriverID: driverID, DriverType: string(driverType)}
	for _, r := range records {
		if r.DriverID != driverID || r.DriverType != driverType {
			continue
		}
		switch r.Type {
		case entity.LedgerReservationCompletion:
			summary.TotalEarnings = summary.TotalEarnings.Add(money(r.CompanyExpense))
		case entity.LedgerDriverPayment:
			summary.TotalPayments = summary.TotalPayments.Add(money(r.Amount))
		case entity.LedgerDriverCollection:
			summary.TotalCollections = summary.TotalCollections.Add(money(r.Amount))
		default:
			continue
		}
		summary.RecordCount++
	}
	summary.NetBalance = summary.TotalEarnings.Sub(summary.TotalPayments).Add(summary.TotalCollections)
	return summary
}
