package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type CompanyFinancialStatus struct {
	TotalRevenue           decimal.Decimal `json:"totalRevenue"`
	TotalExpense           decimal.Decimal `json:"totalExpense"`
	CashRevenue            decimal.Decimal `json:"cashRevenue"`
	CardRevenue            decimal.Decimal `json:"cardRevenue"`
	TotalDriverPayments    decimal.Decimal `json:"totalDriverPayments"`
	TotalDriverCollections decimal.Decimal `json:"totalDriverCollections"`
	TotalManualExpenses    decimal.Decimal `json:"totalManualExpenses"`
	NetProfit              decimal.Decimal `json:"netProfit"`
	CashFlow               decimal.Decimal `json:"cashFlow"`
	ProfitMargin           decimal.Decimal `json:"profitMargin"`
	RecordCount            int             `json:"recordCount"`
}

type RevenueBreakdown struct {
	Total decimal.Decimal `json:"total"`
	Cash  decimal.Decimal `json:"cash"`
	Card  decimal.Decimal `json:"card"`
}

type ExpenseBreakdown struct {
	DriverPayments decimal.Decimal `json:"driverPayments"`
	ManualExpenses decimal.Decimal `json:"manualExpenses"`
	Total          decimal.Decimal `json:"total"`
}

type FinancialReport struct {
	StartDate         time.Time        `json:"startDate"`
	EndDate           time.Time        `json:"endDate"`
	Revenue           RevenueBreakdown `json:"revenue"`
	Expenses          ExpenseBreakdown `json:"expenses"`
	DriverCollections decimal.Decimal  `json:"driverCollections"`
	DriverEarnings    decimal.Decimal  `json:"driverEarnings"`
	NetProfit         decimal.Decimal  `json:"netProfit"`
	RecordCount       int              `json:"recordCount"`
}

type DriverFinancialSummary struct {
	DriverID         string          `json:"driverId"`
	DriverType       string          `json:"driverType"`
	TotalEarnings    decimal.Decimal `json:"totalEarnings"`
	TotalPayments    decimal.Decimal `json:"totalPayments"`
	TotalCollections decimal.Decimal `json:"totalCollections"`
	NetBalance       decimal.Decimal `json:"netBalance"`
	RecordCount      int             `json:"recordCount"`
}

type DailyFinancialSummary struct {
	Date                   time.Time       `json:"date"`
	TodayRevenue           decimal.Decimal `json:"todayRevenue"`
	TodayExpense           decimal.Decimal `json:"todayExpense"`
	TodayDriverCollections decimal.Decimal `json:"todayDriverCollections"`
	TodayNetProfit         decimal.Decimal `json:"todayNetProfit"`
	Report                 FinancialReport `json:"report"`
}

type MonthlySummary struct {
	Year   int             `json:"year"`
	Month  time.Month      `json:"month"`
	Label  string          `json:"label"`
	Report FinancialReport `json:"report"`
}

type FinancialReportRequest struct {
	StartDate string `query:"start"`
	EndDate   string `query:"end"`
}

type MonthlyTrendRequest struct {
	Months int `query:"months"`
}
