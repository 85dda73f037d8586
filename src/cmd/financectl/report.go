package main

import (
	"fmt"
	"os"
	"time"

	"finance-service/src/internal/entity"
	"finance-service/src/pkg/utils"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the company financial status over the whole ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := useCases.Report.GetCompanyFinancialStatus(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, status)
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the financial report for a date range",
	Example: `  financectl report --start 2026-03-01 --end 2026-03-31`,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := dateRange(cmd)
		if err != nil {
			return err
		}
		report, err := useCases.Report.GetFinancialReport(cmd.Context(), start, end)
		if err != nil {
			return err
		}
		return printJSON(cmd, report)
	},
}

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Print today's financial summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := useCases.Report.GetDailyFinancialSummary(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, summary)
	},
}

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Print one report per month, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		months, _ := cmd.Flags().GetInt("months")
		seq, err := useCases.Report.MonthlyFinancialTrend(cmd.Context(), months)
		if err != nil {
			return err
		}
		for summary, err := range seq {
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  revenue %s  expenses %s  net %s\n",
				summary.Label, summary.Report.Revenue.Total, summary.Report.Expenses.Total, summary.Report.NetProfit)
		}
		return nil
	},
}

var driverSummaryCmd = &cobra.Command{
	Use:   "driver-summary <driver-id>",
	Short: "Print a driver's ledger totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		driverType, _ := cmd.Flags().GetString("type")
		summary, err := useCases.Report.GetDriverFinancialSummary(cmd.Context(), args[0], entity.DriverType(driverType))
		if err != nil {
			return err
		}
		return printJSON(cmd, summary)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the financial report and its ledger lines to an XLSX file",
	Example: `  financectl export --start 2026-03-01 --end 2026-03-31 -o march.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := dateRange(cmd)
		if err != nil {
			return err
		}
		path, _ := cmd.Flags().GetString("out")
		if path == "" {
			path = fmt.Sprintf("financial-report_%s_%s.xlsx", start.Format(utils.DateLayout), end.Format(utils.DateLayout))
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := useCases.Export.ExportFinancialReport(cmd.Context(), start, end, f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd, reportCmd, dailyCmd, trendCmd, driverSummaryCmd, exportCmd)

	for _, c := range []*cobra.Command{reportCmd, exportCmd} {
		c.Flags().String("start", "", "First day of the range (YYYY-MM-DD)")
		c.Flags().String("end", "", "Last day of the range (YYYY-MM-DD, default: start)")
		c.MarkFlagRequired("start")
	}
	exportCmd.Flags().StringP("out", "o", "", "Output file")
	trendCmd.Flags().Int("months", 6, "Number of months including the current one")
	driverSummaryCmd.Flags().String("type", string(entity.DriverTypeRegular), "Driver type (regular or manual)")
}

func dateRange(cmd *cobra.Command) (time.Time, time.Time, error) {
	loc := useCases.Report.Location
	startRaw, _ := cmd.Flags().GetString("start")
	endRaw, _ := cmd.Flags().GetString("end")
	if endRaw == "" {
		endRaw = startRaw
	}
	start, err := utils.ParseDate(startRaw, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --start, use YYYY-MM-DD: %w", err)
	}
	end, err := utils.ParseDate(endRaw, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --end, use YYYY-MM-DD: %w", err)
	}
	return start, end, nil
}
