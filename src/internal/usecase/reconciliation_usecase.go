package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finance-service/src/internal/entity"
	"finance-service/src/internal/gateway/messaging"
	"finance-service/src/internal/model"
	"finance-service/src/internal/model/converter"
	"finance-service/src/internal/repository"
	"finance-service/src/pkg/databases/docstore"
	"finance-service/src/pkg/log"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ReconciliationUseCase checks that the three views of a driver's balance
// agree: the stored scalar, the embedded transaction chain and the ledger.
type ReconciliationUseCase struct {
	Log              log.Log
	DriverRepository *repository.DriverRepository
	LedgerRepository *repository.LedgerRepository
	IntentRepository *repository.IntentRepository
	LedgerUseCase    *LedgerUseCase
	LedgerProducer   *messaging.LedgerProducer
	Now              func() time.Time
}

func NewReconciliationUseCase(
	logger log.Log,
	driverRepository *repository.DriverRepository,
	ledgerRepository *repository.LedgerRepository,
	intentRepository *repository.IntentRepository,
	ledgerUseCase *LedgerUseCase,
	ledgerProducer *messaging.LedgerProducer,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		Log:              logger,
		DriverRepository: driverRepository,
		LedgerRepository: ledgerRepository,
		IntentRepository: intentRepository,
		LedgerUseCase:    ledgerUseCase,
		LedgerProducer:   ledgerProducer,
		Now:              time.Now,
	}
}

func (c *ReconciliationUseCase) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *ReconciliationUseCase) ReconcileDriver(ctx context.Context, driverType entity.DriverType, driverID string) (*model.ReconciliationResult, error) {
	if !driverType.Valid() {
		return nil, &ValidationError{Field: "driverType", Message: fmt.Sprintf("unknown driver type %q", driverType)}
	}
	driver, err := c.DriverRepository.FindByID(ctx, driverType, driverID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, &NotFoundError{Resource: "driver", ID: driverID}
	}
	if err != nil {
		return nil, &PersistenceError{Op: "find driver", Err: err}
	}
	records, err := c.LedgerRepository.FindByDriver(ctx, driverID, driverType)
	if err != nil {
		return nil, &PersistenceError{Op: "read ledger", Err: err}
	}
	result := c.check(driver, records)
	return &result, nil
}

// ReconcileAllDrivers checks every system and manual driver against one
// read of the ledger.
func (c *ReconciliationUseCase) ReconcileAllDrivers(ctx context.Context) (*model.ReconciliationRun, error) {
	var regular, manual []entity.Driver
	var records []entity.LedgerRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		regular, err = c.DriverRepository.FindAll(gctx, entity.DriverTypeRegular)
		return err
	})
	g.Go(func() error {
		var err error
		manual, err = c.DriverRepository.FindAll(gctx, entity.DriverTypeManual)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = c.LedgerRepository.FindAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, &PersistenceError{Op: "read drivers and ledger", Err: err}
	}

	run := &model.ReconciliationRun{}
	for _, drivers := range [][]entity.Driver{regular, manual} {
		for i := range drivers {
			result := c.check(&drivers[i], records)
			run.Checked++
			if !result.Consistent {
				run.Inconsistent++
			}
			run.Results = append(run.Results, result)
		}
	}
	c.Log.Info("reconciliation-usecase", fmt.Sprintf("checked %d drivers, %d inconsistent", run.Checked, run.Inconsistent), "ReconcileAllDrivers", "")
	return run, nil
}

func (c *ReconciliationUseCase) check(driver *entity.Driver, records []entity.LedgerRecord) model.ReconciliationResult {
	stored := decimal.NewFromFloat(driver.Balance)
	chain, issues := VerifyTransactionChain(driver.Transactions)
	ledger := foldDriverSummary(records, driver.ID, driver.DriverType).NetBalance

	if len(driver.Transactions) > 0 && !chain.Equal(stored) {
		issues = append(issues, fmt.Sprintf("stored balance %s differs from transaction chain %s", stored, chain))
	}
	if !ledger.Equal(stored) {
		issues = append(issues, fmt.Sprintf("stored balance %s differs from ledger balance %s", stored, ledger))
	}

	result := model.ReconciliationResult{
		DriverID:      driver.ID,
		DriverType:    string(driver.DriverType),
		DriverName:    driver.Name,
		StoredBalance: stored,
		ChainBalance:  chain,
		LedgerBalance: ledger,
		Consistent:    len(issues) == 0,
		Issues:        issues,
		CheckedAt:     c.now(),
	}
	if !result.Consistent {
		c.Log.Error("reconciliation-usecase", "driver balance mismatch", "check", fmt.Sprintf("%s/%s: %v", driver.DriverType, driver.ID, issues))
		if err := c.LedgerProducer.SendReconciliationAlert(converter.ReconciliationToAlert(&result)); err != nil {
			c.Log.Error("reconciliation-usecase", err.Error(), "check", driver.ID)
		}
	}
	return result
}

// ReplayPendingIntents finishes entries left half-written. Intents that
// still fail stay pending for the next run.
func (c *ReconciliationUseCase) ReplayPendingIntents(ctx context.Context) (*model.ReplayResult, error) {
	intents, err := c.IntentRepository.FindPending(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "find pending intents", Err: err}
	}

	result := &model.ReplayResult{Pending: len(intents)}
	for i := range intents {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		status, err := c.LedgerUseCase.ReplayIntent(ctx, &intents[i])
		switch {
		case status == entity.IntentApplied:
			result.Applied++
		case status == entity.IntentAborted:
			result.Aborted++
		case err != nil:
			result.Failed++
		}
	}
	c.Log.Info("reconciliation-usecase", fmt.Sprintf("replayed %d intents", result.Pending), "ReplayPendingIntents", "")
	return result, nil
}
