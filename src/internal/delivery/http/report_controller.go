package http

import (
	"bytes"
	"fmt"
	"time"

	"finance-service/src/internal/entity"
	"finance-service/src/internal/model"
	"finance-service/src/internal/usecase"
	"finance-service/src/pkg/log"
	"finance-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultTrendMonths = 6
	xlsxContentType    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ReportController struct {
	Log                   log.Log
	ReportUseCase         *usecase.ReportUseCase
	ExportUseCase         *usecase.ExportUseCase
	ReconciliationUseCase *usecase.ReconciliationUseCase
}

func NewReportController(
	reportUseCase *usecase.ReportUseCase,
	exportUseCase *usecase.ExportUseCase,
	reconciliationUseCase *usecase.ReconciliationUseCase,
	logger log.Log,
) *ReportController {
	return &ReportController{
		Log:                   logger,
		ReportUseCase:         reportUseCase,
		ExportUseCase:         exportUseCase,
		ReconciliationUseCase: reconciliationUseCase,
	}
}

func (c *ReportController) parseRange(ctx *fiber.Ctx) (time.Time, time.Time, error) {
	request := new(model.FinancialReportRequest)
	if err := ctx.QueryParser(request); err != nil {
		return time.Time{}, time.Time{}, &usecase.ValidationError{Field: "query", Message: err.Error()}
	}
	start, err := utils.ParseDate(request.StartDate, c.ReportUseCase.Location)
	if err != nil {
		return time.Time{}, time.Time{}, &usecase.ValidationError{Field: "start", Message: "must be YYYY-MM-DD"}
	}
	end, err := utils.ParseDate(request.EndDate, c.ReportUseCase.Location)
	if err != nil {
		return time.Time{}, time.Time{}, &usecase.ValidationError{Field: "end", Message: "must be YYYY-MM-DD"}
	}
	return start, end, nil
}

func (c *ReportController) GetCompanyStatus(ctx *fiber.Ctx) error {
	status, err := c.ReportUseCase.GetCompanyFinancialStatus(ctx.Context())
	if err != nil {
		return responseError(err, ctx)
	}

	return utils.Response(status, "Company Financial Status", fiber.StatusOK, ctx)
}

func (c *ReportController) GetFinancialReport(ctx *fiber.Ctx) error {
	start, end, err := c.parseRange(ctx)
	if err != nil {
		return responseError(err, ctx)
	}
	report, err := c.ReportUseCase.GetFinancialReport(ctx.Context(), start, end)
	if err != nil {
		return responseError(err, ctx)
	}

	return utils.Response(report, "Financial Report", fiber.StatusOK, ctx)
}

func (c *ReportController) ExportFinancialReport(ctx *fiber.Ctx) error {
	start, end, err := c.parseRange(ctx)
	if err != nil {
		return responseError(err, ctx)
	}
	var buf bytes.Buffer
	if err := c.ExportUseCase.ExportFinancialReport(ctx.Context(), start, end, &buf); err != nil {
		return responseError(err, ctx)
	}

	filename := fmt.Sprintf("financial-report_%s_%s.xlsx", start.Format(utils.DateLayout), end.Format(utils.DateLayout))
	ctx.Set(fiber.HeaderContentType, xlsxContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

func (c *ReportController) GetDailySummary(ctx *fiber.Ctx) error {
	summary, err := c.ReportUseCase.GetDailyFinancialSummary(ctx.Context())
	if err != nil {
		return responseError(err, ctx)
	}

	return utils.Response(summary, "Daily Financial Summary", fiber.StatusOK, ctx)
}

func (c *ReportController) GetMonthlyTrend(ctx *fiber.Ctx) error {
	request := &model.MonthlyTrendRequest{Months: defaultTrendMonths}
	if err := ctx.QueryParser(request); err != nil {
		return responseError(&usecase.ValidationError{Field: "months", Message: err.Error()}, ctx)
	}
	months, err := c.ReportUseCase.GetMonthlyFinancialTrend(ctx.Context(), request.Months)
	if err != nil {
		return responseError(err, ctx)
	}

	return utils.Response(months, "Monthly Financial Trend", fiber.StatusOK, ctx)
}

func (c *ReportController) GetDriverSummary(ctx *fiber.Ctx) error {
	driverType := entity.DriverType(ctx.Params("driverType"))
	summary, err := c.ReportUseCase.GetDriverFinancialSummary(ctx.Context(), ctx.Params("driverId"), driverType)
	if err != nil {
		return responseError(err, ctx)
	}

	return utils.Response(summary, "Driver Financial Summary", fiber.StatusOK, ctx)
}

func (c *ReportController) ReconcileDriver(ctx *fiber.Ctx) error {
	driverType := entity.DriverType(ctx.Params("driverType"))
	result, err := c.ReconciliationUseCase.ReconcileDriver(ctx.Context(), driverType, ctx.Params("driverId"))
	if err != nil {
		return responseError(err, ctx)
	}

	return utils.Response(result, "Driver Reconciliation", fiber.StatusOK, ctx)
}

func (c *ReportController) ReconcileAllDrivers(ctx *fiber.Ctx) error {
	run, err := c.ReconciliationUseCase.ReconcileAllDrivers(ctx.Context())
	if err != nil {
		return responseError(err, ctx)
	}

	return utils.Response(run, "Reconciliation Run", fiber.StatusOK, ctx)
}

func (c *ReportController) ReplayPendingIntents(ctx *fiber.Ctx) error {
	result, err := c.ReconciliationUseCase.ReplayPendingIntents(ctx.Context())
	if err != nil {
		return responseError(err, ctx)
	}

	return utils.Response(result, "Replay Pending Intents", fiber.StatusOK, ctx)
}
