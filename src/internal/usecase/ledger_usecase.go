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
	"finance-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const completionPrefix = "completion-"

const defaultTransactionLimit = 100

type LedgerUseCase struct {
	Log                   log.Log
	Validate              *validator.Validate
	Store                 docstore.Store
	LedgerRepository      *repository.LedgerRepository
	TransactionRepository *repository.TransactionRepository
	DriverRepository      *repository.DriverRepository
	ReservationRepository *repository.ReservationRepository
	IntentRepository      *repository.IntentRepository
	LedgerProducer        *messaging.LedgerProducer
	Now                   func() time.Time
}

func NewLedgerUseCase(
	logger log.Log,
	validate *validator.Validate,
	store docstore.Store,
	ledgerRepository *repository.LedgerRepository,
	transactionRepository *repository.TransactionRepository,
	driverRepository *repository.DriverRepository,
	reservationRepository *repository.ReservationRepository,
	intentRepository *repository.IntentRepository,
	ledgerProducer *messaging.LedgerProducer,
) *LedgerUseCase {
	return &LedgerUseCase{
		Log:                   logger,
		Validate:              validate,
		Store:                 store,
		LedgerRepository:      ledgerRepository,
		TransactionRepository: transactionRepository,
		DriverRepository:      driverRepository,
		ReservationRepository: reservationRepository,
		IntentRepository:      intentRepository,
		LedgerProducer:        ledgerProducer,
		Now:                   time.Now,
	}
}

func (c *LedgerUseCase) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *LedgerUseCase) RecordDriverPayment(ctx context.Context, request *model.DriverMoneyRequest) (*model.RecordResult, error) {
	return c.recordDriverMoney(ctx, request, entity.DriverTransactionPayment)
}

func (c *LedgerUseCase) RecordDriverCollection(ctx context.Context, request *model.DriverMoneyRequest) (*model.RecordResult, error) {
	return c.recordDriverMoney(ctx, request, entity.DriverTransactionCollection)
}

func (c *LedgerUseCase) recordDriverMoney(ctx context.Context, request *model.DriverMoneyRequest, kind entity.DriverTransactionType) (*model.RecordResult, error) {
	if err := validateAmount("amount", request.Amount); err != nil {
		return nil, err
	}
	if err := c.Validate.Struct(request); err != nil {
		c.Log.Error("ledger-usecase", err.Error(), "recordDriverMoney", utils.ConvertString(request))
		return nil, validationFailed(err)
	}

	driverType := entity.DriverType(request.DriverType)
	driver, err := c.findDriver(ctx, driverType, request.DriverID)
	if err != nil {
		return nil, err
	}

	ledgerType := entity.LedgerDriverPayment
	direction := entity.TransactionDebit
	description := fmt.Sprintf("Driver payment - %s", driver.Name)
	if kind == entity.DriverTransactionCollection {
		ledgerType = entity.LedgerDriverCollection
		direction = entity.TransactionCredit
		description = fmt.Sprintf("Driver collection - %s", driver.Name)
	}

	now := c.now()
	intent := &entity.LedgerIntent{
		Record: entity.LedgerRecord{
			ID:          uuid.NewString(),
			Type:        ledgerType,
			Amount:      request.Amount,
			DriverID:    driver.ID,
			DriverType:  driverType,
			DriverName:  driver.Name,
			Note:        request.Note,
			Date:        now,
			ProcessedBy: request.ProcessedBy,
			CreatedAt:   now,
		},
		Transaction: entity.FinancialTransaction{
			ID:          uuid.NewString(),
			Type:        direction,
			Amount:      request.Amount,
			Description: description,
			Category:    string(ledgerType),
			Date:        now,
			Source:      "driver_management",
			DriverID:    driver.ID,
			DriverType:  driverType,
			DriverName:  driver.Name,
			CreatedAt:   now,
			CreatedBy:   request.ProcessedBy,
		},
		Driver: &entity.DriverEffect{
			EntryID:     uuid.NewString(),
			DriverID:    driver.ID,
			DriverType:  driverType,
			Type:        kind,
			Amount:      request.Amount,
			Note:        request.Note,
			Date:        now,
			ProcessedBy: request.ProcessedBy,
		},
	}
	return c.record(ctx, intent)
}

func (c *LedgerUseCase) RecordManualExpense(ctx context.Context, request *model.ManualExpenseRequest) (*model.RecordResult, error) {
	if err := validateAmount("amount", request.Amount); err != nil {
		return nil, err
	}
	if err := c.Validate.Struct(request); err != nil {
		c.Log.Error("ledger-usecase", err.Error(), "RecordManualExpense", utils.ConvertString(request))
		return nil, validationFailed(err)
	}

	now := c.now()
	intent := &entity.LedgerIntent{
		Record: entity.LedgerRecord{
			ID:          uuid.NewString(),
			Type:        entity.LedgerManualExpense,
			Amount:      request.Amount,
			Category:    request.Category,
			Description: request.Description,
			Note:        request.Note,
			Date:        now,
			ProcessedBy: request.ProcessedBy,
			CreatedAt:   now,
		},
		Transaction: entity.FinancialTransaction{
			ID:          uuid.NewString(),
			Type:        entity.TransactionDebit,
			Amount:      request.Amount,
			Description: request.Description,
			Category:    request.Category,
			Date:        now,
			Source:      "manual_expense",
			CreatedAt:   now,
			CreatedBy:   request.ProcessedBy,
		},
	}
	return c.record(ctx, intent)
}

// RecordReservationCompletion books the revenue split of a completed
// reservation and credits the driver's share to their balance. A
// reservation is booked at most once.
func (c *LedgerUseCase) RecordReservationCompletion(ctx context.Context, request *model.ReservationCompletionRequest) (*model.RecordResult, error) {
	if err := c.Validate.Struct(request); err != nil {
		c.Log.Error("ledger-usecase", err.Error(), "RecordReservationCompletion", utils.ConvertString(request))
		return nil, validationFailed(err)
	}

	reservation, err := c.ReservationRepository.FindByID(ctx, request.ReservationID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, &NotFoundError{Resource: "reservation", ID: request.ReservationID}
	}
	if err != nil {
		return nil, &PersistenceError{Op: "find reservation", Err: err}
	}
	if reservation.Status != entity.ReservationStatusCompleted {
		return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("reservation is %q, not completed", reservation.Status)}
	}
	if err := validateAmount("totalPrice", reservation.TotalPrice); err != nil {
		return nil, err
	}
	if reservation.PaymentMethod != entity.PaymentCash && reservation.PaymentMethod != entity.PaymentCard {
		return nil, &ValidationError{Field: "paymentMethod", Message: fmt.Sprintf("unsupported payment method %q", reservation.PaymentMethod)}
	}

	recordID := completionPrefix + reservation.ID
	if _, err := c.LedgerRepository.FindByID(ctx, recordID); err == nil {
		return nil, &ConflictError{Message: fmt.Sprintf("reservation %s is already booked", reservation.ID)}
	} else if !errors.Is(err, docstore.ErrNotFound) {
		return nil, &PersistenceError{Op: "find ledger record", Err: err}
	}

	price := money(reservation.TotalPrice)
	expense := decimal.Zero
	var driver *entity.Driver
	if driverID := reservation.ResolvedDriverID(); driverID != "" {
		driverType := reservation.ResolvedDriverType()
		if !driverType.Valid() {
			return nil, &ValidationError{Field: "driverType", Message: fmt.Sprintf("unknown driver type %q", driverType)}
		}
		driver, err = c.findDriver(ctx, driverType, driverID)
		if err != nil {
			return nil, err
		}
		expense, err = driverShare(driver, reservation, price)
		if err != nil {
			return nil, err
		}
	}
	revenue := price.Sub(expense)

	now := c.now()
	date := now
	if reservation.CompletedAt != nil && !reservation.CompletedAt.IsZero() {
		date = *reservation.CompletedAt
	}

	record := entity.LedgerRecord{
		ID:             recordID,
		Type:           entity.LedgerReservationCompletion,
		Amount:         reservation.TotalPrice,
		CompanyRevenue: revenue.InexactFloat64(),
		CompanyExpense: expense.InexactFloat64(),
		PaymentMethod:  reservation.PaymentMethod,
		ReservationID:  reservation.ID,
		Description:    fmt.Sprintf("Reservation %s completed", reservation.ID),
		Date:           date,
		ProcessedBy:    request.ProcessedBy,
		CreatedAt:      now,
	}
	txn := entity.FinancialTransaction{
		ID:          uuid.NewString(),
		Type:        entity.TransactionCredit,
		Amount:      record.CompanyRevenue,
		Description: fmt.Sprintf("Reservation revenue - %s", reservation.ID),
		Category:    string(entity.LedgerReservationCompletion),
		Date:        date,
		Source:      "reservations",
		CreatedAt:   now,
		CreatedBy:   request.ProcessedBy,
	}
	intent := &entity.LedgerIntent{Record: record, Transaction: txn}

	if driver != nil {
		intent.Record.DriverID = driver.ID
		intent.Record.DriverType = driver.DriverType
		intent.Record.DriverName = driver.Name
		intent.Transaction.DriverID = driver.ID
		intent.Transaction.DriverType = driver.DriverType
		intent.Transaction.DriverName = driver.Name
		if expense.IsPositive() {
			intent.Driver = &entity.DriverEffect{
				EntryID:       uuid.NewString(),
				DriverID:      driver.ID,
				DriverType:    driver.DriverType,
				Type:          entity.DriverTransactionEarning,
				Amount:        record.CompanyExpense,
				Note:          fmt.Sprintf("Reservation %s", reservation.ID),
				Date:          date,
				ProcessedBy:   request.ProcessedBy,
				ReservationID: reservation.ID,
			}
		}
	}
	return c.record(ctx, intent)
}

// driverShare is what the company pays the driver out of price: the
// commission for system drivers, the negotiated fee for manual ones.
func driverShare(driver *entity.Driver, reservation *entity.Reservation, price decimal.Decimal) (decimal.Decimal, error) {
	switch driver.DriverType {
	case entity.DriverTypeManual:
		if err := validateFee(reservation.DriverFee); err != nil {
			return decimal.Zero, err
		}
		fee := money(reservation.DriverFee)
		if fee.GreaterThan(price) {
			return decimal.Zero, &ValidationError{Field: "driverFee", Message: "exceeds the reservation price"}
		}
		return fee, nil
	default:
		rate := driver.CommissionRate()
		if rate < 0 || rate > 100 {
			return decimal.Zero, &ValidationError{Field: "commission", Message: "must be between 0 and 100"}
		}
		return price.Mul(money(rate)).Div(hundred).Round(2), nil
	}
}

func validateFee(fee float64) error {
	if fee == 0 {
		return nil
	}
	return validateAmount("driverFee", fee)
}

func (c *LedgerUseCase) findDriver(ctx context.Context, driverType entity.DriverType, id string) (*entity.Driver, error) {
	driver, err := c.DriverRepository.FindByID(ctx, driverType, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, &ValidationError{Field: "driverId", Message: fmt.Sprintf("%s driver %s not found", driverType, id)}
	}
	if err != nil {
		return nil, &PersistenceError{Op: "find driver", Err: err}
	}
	return driver, nil
}

// record writes the intent, then applies it in one store transaction. On
// stores without transactions a failure after the first write leaves the
// intent pending for ReplayIntent.
func (c *LedgerUseCase) record(ctx context.Context, intent *entity.LedgerIntent) (*model.RecordResult, error) {
	intent.ID = uuid.NewString()
	intent.Record.IntentID = intent.ID
	intent.Transaction.LedgerRecordID = intent.Record.ID
	if err := c.IntentRepository.Create(ctx, intent); err != nil {
		c.Log.Error("ledger-usecase", err.Error(), "record", intent.Record.ID)
		return nil, &PersistenceError{Op: "create intent", Err: err}
	}

	intent.Attempts++
	result, wrote, err := c.applyInTransaction(ctx, intent)
	if err != nil {
		return nil, c.fail(ctx, intent, wrote, err)
	}

	if err := c.IntentRepository.MarkStatus(ctx, intent, entity.IntentApplied, nil); err != nil {
		c.Log.Error("ledger-usecase", err.Error(), "record", intent.ID)
	}
	c.publish(result)
	c.Log.Info("ledger-usecase", fmt.Sprintf("recorded %s", intent.Record.Type), "record", intent.Record.ID)
	return result, nil
}

func (c *LedgerUseCase) fail(ctx context.Context, intent *entity.LedgerIntent, wrote bool, err error) error {
	var validationErr *ValidationError
	var conflictErr *ConflictError
	partial := wrote && !c.Store.Transactional()

	c.Log.Error("ledger-usecase", err.Error(), "record", intent.ID)
	if partial {
		if markErr := c.IntentRepository.MarkStatus(ctx, intent, entity.IntentPending, err); markErr != nil {
			c.Log.Error("ledger-usecase", markErr.Error(), "record", intent.ID)
		}
		return &PartialWriteError{IntentID: intent.ID, Err: err}
	}

	if markErr := c.IntentRepository.MarkStatus(ctx, intent, entity.IntentAborted, err); markErr != nil {
		c.Log.Error("ledger-usecase", markErr.Error(), "record", intent.ID)
	}
	if errors.As(err, &validationErr) || errors.As(err, &conflictErr) {
		return err
	}
	return &PersistenceError{Op: fmt.Sprintf("record %s", intent.Record.Type), Err: err}
}

func (c *LedgerUseCase) applyInTransaction(ctx context.Context, intent *entity.LedgerIntent) (*model.RecordResult, bool, error) {
	var result *model.RecordResult
	wrote := false
	err := c.Store.RunTransaction(ctx, func(ctx context.Context) error {
		var err error
		result, err = c.apply(ctx, intent, &wrote)
		return err
	})
	return result, wrote, err
}

// apply performs every write of intent. Each step tolerates having been
// done by an earlier attempt, so it is safe to run again.
func (c *LedgerUseCase) apply(ctx context.Context, intent *entity.LedgerIntent, wrote *bool) (*model.RecordResult, error) {
	result := &model.RecordResult{Record: intent.Record, Transaction: intent.Transaction}

	var driver *entity.Driver
	if effect := intent.Driver; effect != nil {
		current, err := c.DriverRepository.FindByID(ctx, effect.DriverType, effect.DriverID)
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, &ValidationError{Field: "driverId", Message: fmt.Sprintf("%s driver %s not found", effect.DriverType, effect.DriverID)}
		}
		if err != nil {
			return nil, err
		}
		if existing := findDriverTransaction(current, effect.EntryID); existing != nil {
			result.DriverTransaction = existing
		} else {
			txn, err := ApplyDriverEffect(current, *effect)
			if err != nil {
				return nil, err
			}
			driver = current
			result.DriverTransaction = &txn
		}
		balance := current.Balance
		result.DriverBalance = &balance
	}

	// Look before inserting: a duplicate key aborts a MongoDB transaction.
	record := intent.Record
	existing, err := c.LedgerRepository.FindByID(ctx, record.ID)
	switch {
	case err == nil:
		if existing.IntentID != intent.ID {
			return nil, &ConflictError{Message: fmt.Sprintf("ledger record %s already exists", record.ID)}
		}
	case errors.Is(err, docstore.ErrNotFound):
		if err := c.LedgerRepository.Insert(ctx, &record); err != nil {
			if errors.Is(err, docstore.ErrDuplicateID) {
				return nil, &ConflictError{Message: fmt.Sprintf("ledger record %s already exists", record.ID)}
			}
			return nil, err
		}
		*wrote = true
	default:
		return nil, err
	}

	paired, err := c.TransactionRepository.FindByLedgerRecordID(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	if len(paired) == 0 {
		txn := intent.Transaction
		if err := c.TransactionRepository.Insert(ctx, &txn); err != nil {
			return nil, err
		}
		*wrote = true
	}

	if driver != nil {
		if err := c.DriverRepository.UpdateBalance(ctx, driver); err != nil {
			return nil, err
		}
	}
	if _, err := c.LedgerRepository.BumpGeneration(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// ReplayIntent finishes a pending intent. It returns the status the intent
// was left in.
func (c *LedgerUseCase) ReplayIntent(ctx context.Context, intent *entity.LedgerIntent) (entity.IntentStatus, error) {
	if intent.Status != entity.IntentPending {
		return intent.Status, nil
	}
	intent.Attempts++
	result, _, err := c.applyInTransaction(ctx, intent)
	if err != nil {
		var validationErr *ValidationError
		var conflictErr *ConflictError
		status := entity.IntentPending
		if errors.As(err, &validationErr) || errors.As(err, &conflictErr) {
			status = entity.IntentAborted
		}
		c.Log.Error("ledger-usecase", err.Error(), "ReplayIntent", intent.ID)
		if markErr := c.IntentRepository.MarkStatus(ctx, intent, status, err); markErr != nil {
			c.Log.Error("ledger-usecase", markErr.Error(), "ReplayIntent", intent.ID)
		}
		return status, err
	}

	if err := c.IntentRepository.MarkStatus(ctx, intent, entity.IntentApplied, nil); err != nil {
		return entity.IntentPending, &PersistenceError{Op: "mark intent applied", Err: err}
	}
	c.publish(result)
	c.Log.Info("ledger-usecase", "replayed intent", "ReplayIntent", intent.ID)
	return entity.IntentApplied, nil
}

func (c *LedgerUseCase) publish(result *model.RecordResult) {
	if err := c.LedgerProducer.SendLedgerRecorded(converter.RecordToEvent(result)); err != nil {
		c.Log.Error("ledger-usecase", err.Error(), "publish", result.Record.ID)
	}
}

func (c *LedgerUseCase) ListTransactions(ctx context.Context, request *model.ListTransactionsRequest) ([]entity.FinancialTransaction, error) {
	if err := c.Validate.Struct(request); err != nil {
		return nil, validationFailed(err)
	}
	limit := request.Limit
	if limit == 0 {
		limit = defaultTransactionLimit
	}
	txns, err := c.TransactionRepository.FindRecent(ctx, repository.TransactionFilter{
		DriverID: request.DriverID,
		Type:     entity.TransactionDirection(request.Type),
		Limit:    limit,
	})
	if err != nil {
		return nil, &PersistenceError{Op: "list transactions", Err: err}
	}
	return txns, nil
}

// SubscribeLedger streams newly appended ledger records until ctx ends.
func (c *LedgerUseCase) SubscribeLedger(ctx context.Context, fn func(entity.LedgerRecord)) (func(), error) {
	unsubscribe, err := c.LedgerRepository.Subscribe(ctx, fn)
	if err != nil {
		return nil, &PersistenceError{Op: "subscribe ledger", Err: err}
	}
	return unsubscribe, nil
}
