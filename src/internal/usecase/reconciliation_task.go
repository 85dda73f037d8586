package usecase

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	TypeReconcileDrivers = "finance:reconcile-drivers"
	TypeReplayIntents    = "finance:replay-intents"
)

func NewReconcileDriversTask() *asynq.Task {
	return asynq.NewTask(TypeReconcileDrivers, nil)
}

func NewReplayIntentsTask() *asynq.Task {
	return asynq.NewTask(TypeReplayIntents, nil)
}

func (c *ReconciliationUseCase) HandleReconcileDrivers(ctx context.Context, _ *asynq.Task) error {
	run, err := c.ReconcileAllDrivers(ctx)
	if err != nil {
		c.Log.Error("reconciliation-task", err.Error(), "HandleReconcileDrivers", "")
		return err
	}
	if run.Inconsistent > 0 {
		c.Log.Error("reconciliation-task", fmt.Sprintf("%d of %d drivers inconsistent", run.Inconsistent, run.Checked), "HandleReconcileDrivers", "")
	}
	return nil
}

func (c *ReconciliationUseCase) HandleReplayIntents(ctx context.Context, _ *asynq.Task) error {
	result, err := c.ReplayPendingIntents(ctx)
	if err != nil {
		c.Log.Error("reconciliation-task", err.Error(), "HandleReplayIntents", "")
		return err
	}
	if result.Failed > 0 {
		c.Log.Error("reconciliation-task", fmt.Sprintf("%d intents still pending", result.Failed), "HandleReplayIntents", "")
	}
	return nil
}
