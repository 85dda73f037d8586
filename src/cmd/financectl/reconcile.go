package main

import (
	"fmt"
	"time"

	"finance-service/src/internal/config"
	"finance-service/src/internal/entity"
	"finance-service/src/internal/usecase"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile [driver-id]",
	Short: "Compare stored driver balances with their transaction chains and the ledger",
	Long: `Without arguments every system and manual driver is checked. With a
driver id only that driver is checked. Mismatches are reported and, when
Kafka is enabled, published as reconciliation alerts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			driverType, _ := cmd.Flags().GetString("type")
			result, err := useCases.Reconciliation.ReconcileDriver(cmd.Context(), entity.DriverType(driverType), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		}
		run, err := useCases.Reconciliation.ReconcileAllDrivers(cmd.Context())
		if err != nil {
			return err
		}
		for _, r := range run.Results {
			if !r.Consistent {
				fmt.Fprintf(cmd.OutOrStdout(), "%s/%s %s: %v\n", r.DriverType, r.DriverID, r.DriverName, r.Issues)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "checked %d drivers, %d inconsistent\n", run.Checked, run.Inconsistent)
		return nil
	},
}

var replayCmd = &cobra.Command{
	Use:   "replay-intents",
	Short: "Finish ledger entries whose writes were interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := useCases.Reconciliation.ReplayPendingIntents(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, result)
	},
}

var enqueueCmd = &cobra.Command{
	Use:       "enqueue <reconcile|replay>",
	Short:     "Hand a reconciliation or replay run to the service workers",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"reconcile", "replay"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var task *asynq.Task
		switch args[0] {
		case "reconcile":
			task = usecase.NewReconcileDriversTask()
		case "replay":
			task = usecase.NewReplayIntentsTask()
		default:
			return fmt.Errorf("unknown task %q", args[0])
		}

		client := config.NewAsynqClient(viperConfig)
		defer client.Close()
		info, err := client.EnqueueContext(cmd.Context(), task, asynq.MaxRetry(3), asynq.Timeout(10*time.Minute))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "enqueued %s as %s\n", info.Type, info.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd, replayCmd, enqueueCmd)
	reconcileCmd.Flags().String("type", string(entity.DriverTypeRegular), "Driver type (regular or manual)")
}
