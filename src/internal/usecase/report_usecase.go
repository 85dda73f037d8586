package usecase

import (
	"context"
	"fmt"
	"iter"
	"time"

	"finance-service/src/internal/entity"
	"finance-service/src/internal/model"
	"finance-service/src/internal/repository"
	"finance-service/src/pkg/log"
	"finance-service/src/pkg/utils"
)

// ReportCache stores derived reports per ledger generation. Entries of an
// older generation are never read again, so appends need no invalidation.
type ReportCache interface {
	Get(ctx context.Context, generation int64, name string, out any) (bool, error)
	Set(ctx context.Context, generation int64, name string, value any) error
}

type ReportUseCase struct {
	Log              log.Log
	LedgerRepository *repository.LedgerRepository
	Cache            ReportCache
	Location         *time.Location
	Now              func() time.Time
}

func NewReportUseCase(logger log.Log, ledgerRepository *repository.LedgerRepository, cache ReportCache, location *time.Location) *ReportUseCase {
	if location == nil {
		location = time.Local
	}
	return &ReportUseCase{
		Log:              logger,
		LedgerRepository: ledgerRepository,
		Cache:            cache,
		Location:         location,
		Now:              time.Now,
	}
}

func (c *ReportUseCase) now() time.Time {
	if c.Now == nil {
		return time.Now().In(c.Location)
	}
	return c.Now().In(c.Location)
}

func (c *ReportUseCase) GetCompanyFinancialStatus(ctx context.Context) (*model.CompanyFinancialStatus, error) {
	status, err := cached(ctx, c, "status", func() (model.CompanyFinancialStatus, error) {
		records, err := c.LedgerRepository.FindAll(ctx)
		if err != nil {
			return model.CompanyFinancialStatus{}, &PersistenceError{Op: "read ledger", Err: err}
		}
		return foldCompanyStatus(records), nil
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// GetFinancialReport folds records dated from the start of startDate's day
// through the end of endDate's day.
func (c *ReportUseCase) GetFinancialReport(ctx context.Context, startDate, endDate time.Time) (*model.FinancialReport, error) {
	start := utils.StartOfDay(startDate.In(c.Location))
	end := utils.EndOfDay(endDate.In(c.Location))
	if end.Before(start) {
		return nil, &ValidationError{Field: "endDate", Message: "must not be before startDate"}
	}
	report, err := c.report(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// report folds the exact range [start, end].
func (c *ReportUseCase) report(ctx context.Context, start, end time.Time) (model.FinancialReport, error) {
	name := fmt.Sprintf("report:%d:%d", start.UnixNano(), end.UnixNano())
	return cached(ctx, c, name, func() (model.FinancialReport, error) {
		records, err := c.LedgerRepository.FindByDateRange(ctx, start, end)
		if err != nil {
			return model.FinancialReport{}, &PersistenceError{Op: "read ledger", Err: err}
		}
		return foldReport(records, start, end), nil
	})
}

func (c *ReportUseCase) GetDriverFinancialSummary(ctx context.Context, driverID string, driverType entity.DriverType) (*model.DriverFinancialSummary, error) {
	if driverID == "" {
		return nil, &ValidationError{Field: "driverId", Message: "is required"}
	}
	if driverType == "" {
		driverType = entity.DriverTypeRegular
	}
	if !driverType.Valid() {
		return nil, &ValidationError{Field: "driverType", Message: fmt.Sprintf("unknown driver type %q", driverType)}
	}
	name := fmt.Sprintf("driver:%s:%s", driverType, driverID)
	summary, err := cached(ctx, c, name, func() (model.DriverFinancialSummary, error) {
		records, err := c.LedgerRepository.FindByDriver(ctx, driverID, driverType)
		if err != nil {
			return model.DriverFinancialSummary{}, &PersistenceError{Op: "read ledger", Err: err}
		}
		return foldDriverSummary(records, driverID, driverType), nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *ReportUseCase) GetDailyFinancialSummary(ctx context.Context) (*model.DailyFinancialSummary, error) {
	today := utils.StartOfDay(c.now())
	report, err := c.report(ctx, today, utils.EndOfDay(today))
	if err != nil {
		return nil, err
	}
	return &model.DailyFinancialSummary{
		Date:                   today,
		TodayRevenue:           report.Revenue.Total,
		TodayExpense:           report.Expenses.Total,
		TodayDriverCollections: report.DriverCollections,
		TodayNetProfit:         report.NetProfit,
		Report:                 report,
	}, nil
}

// MonthlyFinancialTrend yields one report per calendar month, oldest first,
// ending with the current month. Each range over the sequence reads the
// ledger again; the months themselves are fixed when it is created.
func (c *ReportUseCase) MonthlyFinancialTrend(ctx context.Context, monthsBack int) (iter.Seq2[model.MonthlySummary, error], error) {
	if monthsBack < 1 {
		return nil, &ValidationError{Field: "monthsBack", Message: "must be at least 1"}
	}
	current := utils.StartOfMonth(c.now())
	first := current.AddDate(0, -(monthsBack - 1), 0)

	return func(yield func(model.MonthlySummary, error) bool) {
		for i := 0; i < monthsBack; i++ {
			start := first.AddDate(0, i, 0)
			report, err := c.report(ctx, start, utils.EndOfMonth(start))
			summary := model.MonthlySummary{
				Year:   start.Year(),
				Month:  start.Month(),
				Label:  start.Format("2006-01"),
				Report: report,
			}
			if !yield(summary, err) || err != nil {
				return
			}
		}
	}, nil
}

// GetMonthlyFinancialTrend collects MonthlyFinancialTrend into a slice.
func (c *ReportUseCase) GetMonthlyFinancialTrend(ctx context.Context, monthsBack int) ([]model.MonthlySummary, error) {
	seq, err := c.MonthlyFinancialTrend(ctx, monthsBack)
	if err != nil {
		return nil, err
	}
	months := make([]model.MonthlySummary, 0, monthsBack)
	for summary, err := range seq {
		if err != nil {
			return nil, err
		}
		months = append(months, summary)
	}
	return months, nil
}

// cached serves name from the report cache for the current ledger
// generation, computing and storing it on a miss. Cache failures fall
// back to computing.
func cached[T any](ctx context.Context, c *ReportUseCase, name string, compute func() (T, error)) (T, error) {
	if c.Cache == nil {
		return compute()
	}
	generation, err := c.LedgerRepository.Generation(ctx)
	if err != nil {
		c.Log.Error("report-usecase", err.Error(), "cached", name)
		return compute()
	}

	var out T
	hit, err := c.Cache.Get(ctx, generation, name, &out)
	if err != nil {
		c.Log.Error("report-usecase", err.Error(), "cached", name)
	}
	if hit {
		return out, nil
	}

	out, err = compute()
	if err != nil {
		return out, err
	}
	if err := c.Cache.Set(ctx, generation, name, out); err != nil {
		c.Log.Error("report-usecase", err.Error(), "cached", name)
	}
	return out, nil
}
