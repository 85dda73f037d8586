package route

import (
	"finance-service/src/internal/delivery/http"
	"finance-service/src/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v2"
)

type RouteConfig struct {
	App               *fiber.App
	FinanceController *http.FinanceController
	ReportController  *http.ReportController
	AuthMiddleware    fiber.Handler
}

func (c *RouteConfig) Setup() {
	c.App.Use(middleware.NewLogger())
	c.App.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.SendString("OK")
	})
	c.SetupAuthRoute()
}

func (c *RouteConfig) SetupAuthRoute() {
	finance := c.App.Group("/finance/v1", c.AuthMiddleware)

	finance.Post("/drivers/:driverType/:driverId/payments", c.FinanceController.RecordDriverPayment)
	finance.Post("/drivers/:driverType/:driverId/collections", c.FinanceController.RecordDriverCollection)
	finance.Post("/expenses", c.FinanceController.RecordManualExpense)
	finance.Post("/reservations/:reservationId/completion", c.FinanceController.RecordReservationCompletion)
	finance.Get("/transactions", c.FinanceController.ListTransactions)
	finance.Get("/ledger/stream", c.FinanceController.StreamLedger)

	finance.Get("/status", c.ReportController.GetCompanyStatus)
	finance.Get("/reports", c.ReportController.GetFinancialReport)
	finance.Get("/reports/export", c.ReportController.ExportFinancialReport)
	finance.Get("/reports/daily", c.ReportController.GetDailySummary)
	finance.Get("/reports/monthly", c.ReportController.GetMonthlyTrend)
	finance.Get("/drivers/:driverType/:driverId/summary", c.ReportController.GetDriverSummary)
	finance.Get("/drivers/:driverType/:driverId/reconciliation", c.ReportController.ReconcileDriver)
	finance.Post("/reconciliation/run", c.ReportController.ReconcileAllDrivers)
	finance.Post("/reconciliation/replay", c.ReportController.ReplayPendingIntents)
}
