package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"finance-service/src/internal/entity"
	"finance-service/src/internal/gateway/messaging"
	"finance-service/src/internal/model"
	"finance-service/src/pkg/databases/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moneyRequest(driver *entity.Driver, amount float64) *model.DriverMoneyRequest {
	return &model.DriverMoneyRequest{
		DriverID:    driver.ID,
		DriverType:  string(driver.DriverType),
		Amount:      amount,
		Note:        "cash handover",
		ProcessedBy: "admin-1",
	}
}

func TestCollectionThenPaymentMatchesLedgerSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	driver := f.addDriver(t, entity.Driver{ID: "drv-d", Name: "D"})

	res, err := f.ledgerUC.RecordDriverCollection(ctx, moneyRequest(driver, 100))
	require.NoError(t, err)
	require.NotNil(t, res.DriverBalance)
	assert.Equal(t, 100.0, *res.DriverBalance)

	stored := f.getDriver(t, entity.DriverTypeRegular, driver.ID)
	assert.Equal(t, 100.0, stored.Balance)
	require.Len(t, stored.Transactions, 1)
	assert.Equal(t, entity.DriverTransactionCollection, stored.Transactions[0].Type)
	assert.Equal(t, 100.0, stored.Transactions[0].Amount)
	assert.Equal(t, 0.0, stored.Transactions[0].BalanceBefore)
	assert.Equal(t, 100.0, stored.Transactions[0].BalanceAfter)

	_, err = f.ledgerUC.RecordDriverPayment(ctx, moneyRequest(driver, 30))
	require.NoError(t, err)
	stored = f.getDriver(t, entity.DriverTypeRegular, driver.ID)
	assert.Equal(t, 70.0, stored.Balance)

	summary, err := f.reportUC.GetDriverFinancialSummary(ctx, driver.ID, entity.DriverTypeRegular)
	require.NoError(t, err)
	assert.Equal(t, "100", summary.TotalCollections.String())
	assert.Equal(t, "30", summary.TotalPayments.String())
	assert.Equal(t, "0", summary.TotalEarnings.String())
	assert.Equal(t, "70", summary.NetBalance.String())
	assert.Equal(t, stored.Balance, summary.NetBalance.InexactFloat64())
}

func TestRecordDriverMoneySignLaw(t *testing.T) {
	amounts := []float64{0.01, 1, 17.5, 250.75, 10000}
	for _, amount := range amounts {
		f := newFixture(t)
		ctx := context.Background()
		driver := f.addDriver(t, entity.Driver{ID: "drv", Name: "Sign", Balance: 0})
		_, err := f.ledgerUC.RecordDriverCollection(ctx, moneyRequest(driver, 500))
		require.NoError(t, err)

		before := f.getDriver(t, entity.DriverTypeRegular, driver.ID).Balance
		_, err = f.ledgerUC.RecordDriverPayment(ctx, moneyRequest(driver, amount))
		require.NoError(t, err)
		afterPayment := f.getDriver(t, entity.DriverTypeRegular, driver.ID).Balance
		assert.InDelta(t, before-amount, afterPayment, 1e-9)

		_, err = f.ledgerUC.RecordDriverCollection(ctx, moneyRequest(driver, amount))
		require.NoError(t, err)
		afterCollection := f.getDriver(t, entity.DriverTypeRegular, driver.ID).Balance
		assert.InDelta(t, afterPayment+amount, afterCollection, 1e-9)
	}
}

func TestRecordDriverMoneyRejectsInvalidAmountsWithoutWriting(t *testing.T) {
	for _, amount := range []float64{0, -10, math.NaN(), math.Inf(-1)} {
		f := newFixture(t)
		ctx := context.Background()
		driver := f.addDriver(t, entity.Driver{ID: "drv", Name: "V", Balance: 42})

		_, err := f.ledgerUC.RecordDriverPayment(ctx, moneyRequest(driver, amount))
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)

		_, err = f.ledgerUC.RecordDriverCollection(ctx, moneyRequest(driver, amount))
		require.ErrorAs(t, err, &validationErr)

		assert.Zero(t, f.store.Count(entity.CollectionCompanyFinancials))
		assert.Zero(t, f.store.Count(entity.CollectionFinancialTransactions))
		assert.Zero(t, f.store.Count(entity.CollectionLedgerIntents))
		stored := f.getDriver(t, entity.DriverTypeRegular, driver.ID)
		assert.Equal(t, 42.0, stored.Balance)
		assert.Empty(t, stored.Transactions)
	}
}

func TestRecordDriverMoneyRejectsUnknownDriver(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledgerUC.RecordDriverPayment(context.Background(), &model.DriverMoneyRequest{
		DriverID:    "ghost",
		DriverType:  "regular",
		Amount:      10,
		ProcessedBy: "admin-1",
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "driverId", validationErr.Field)
	assert.Zero(t, f.store.Count(entity.CollectionCompanyFinancials))
}

func TestRecordDriverMoneyRejectsBadDriverType(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledgerUC.RecordDriverCollection(context.Background(), &model.DriverMoneyRequest{
		DriverID:    "drv",
		DriverType:  "freelance",
		Amount:      10,
		ProcessedBy: "admin-1",
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Field, "DriverType")
}

func TestRecordDriverPaymentWritesPairedRecords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	driver := f.addDriver(t, entity.Driver{ID: "m-1", Name: "Manual", DriverType: entity.DriverTypeManual})

	res, err := f.ledgerUC.RecordDriverPayment(ctx, moneyRequest(driver, 45))
	require.NoError(t, err)

	assert.Equal(t, entity.LedgerDriverPayment, res.Record.Type)
	assert.Equal(t, entity.DriverTypeManual, res.Record.DriverType)
	assert.Equal(t, "Manual", res.Record.DriverName)
	assert.Equal(t, fixedNow, res.Record.Date)
	assert.Equal(t, entity.TransactionDebit, res.Transaction.Type)
	assert.Equal(t, res.Record.ID, res.Transaction.LedgerRecordID)

	assert.Equal(t, 1, f.store.Count(entity.CollectionCompanyFinancials))
	assert.Equal(t, 1, f.store.Count(entity.CollectionFinancialTransactions))
	assert.Equal(t, -45.0, f.getDriver(t, entity.DriverTypeManual, driver.ID).Balance)

	intent, err := f.intents.FindByID(ctx, res.Record.IntentID)
	require.NoError(t, err)
	assert.Equal(t, entity.IntentApplied, intent.Status)

	generation, err := f.ledger.Generation(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, generation)
}

func TestRecordManualExpenseWritesBothRepresentations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.ledgerUC.RecordManualExpense(ctx, &model.ManualExpenseRequest{
		Category:    "fuel",
		Description: "Diesel for van 3",
		Amount:      60.5,
		ProcessedBy: "admin-1",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.LedgerManualExpense, res.Record.Type)
	assert.Nil(t, res.DriverTransaction)
	assert.Equal(t, 1, f.store.Count(entity.CollectionCompanyFinancials))
	assert.Equal(t, 1, f.store.Count(entity.CollectionFinancialTransactions))

	txns, err := f.ledgerUC.ListTransactions(ctx, &model.ListTransactionsRequest{Type: "debit"})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "fuel", txns[0].Category)
	assert.Equal(t, 60.5, txns[0].Amount)
	assert.Equal(t, res.Record.ID, txns[0].LedgerRecordID)
}

func TestRecordManualExpenseValidation(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledgerUC.RecordManualExpense(context.Background(), &model.ManualExpenseRequest{
		Description: "no category",
		Amount:      5,
		ProcessedBy: "admin-1",
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Zero(t, f.store.Count(entity.CollectionCompanyFinancials))
}

func TestRecordReservationCompletionSystemDriver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	driver := f.addDriver(t, entity.Driver{ID: "drv-1", Name: "Ali", Commission: commission(20)})
	completedAt := fixedNow.Add(-time.Hour)
	f.addReservation(t, entity.Reservation{
		ID:            "res-1",
		Status:        entity.ReservationStatusCompleted,
		TotalPrice:    100,
		PaymentMethod: entity.PaymentCash,
		DriverID:      driver.ID,
		CompletedAt:   &completedAt,
	})

	res, err := f.ledgerUC.RecordReservationCompletion(ctx, &model.ReservationCompletionRequest{ReservationID: "res-1", ProcessedBy: "admin-1"})
	require.NoError(t, err)

	assert.Equal(t, "completion-res-1", res.Record.ID)
	assert.Equal(t, 20.0, res.Record.CompanyExpense)
	assert.Equal(t, 80.0, res.Record.CompanyRevenue)
	assert.Equal(t, entity.PaymentCash, res.Record.PaymentMethod)
	assert.True(t, completedAt.Equal(res.Record.Date))
	assert.Equal(t, 80.0, res.Transaction.Amount)

	stored := f.getDriver(t, entity.DriverTypeRegular, driver.ID)
	assert.Equal(t, 20.0, stored.Balance)
	require.Len(t, stored.Transactions, 1)
	assert.Equal(t, entity.DriverTransactionEarning, stored.Transactions[0].Type)
	assert.Equal(t, "res-1", stored.Transactions[0].ReservationID)

	require.Len(t, f.kafka.messages, 1)
	assert.Equal(t, messaging.TopicLedgerRecorded, f.kafka.messages[0].topic)
	var event model.LedgerRecordedEvent
	require.NoError(t, json.Unmarshal(f.kafka.messages[0].value, &event))
	assert.Equal(t, "completion-res-1", event.RecordID)
	assert.Equal(t, 80.0, event.CompanyRevenue)
}

func TestRecordReservationCompletionRoundsCommission(t *testing.T) {
	f := newFixture(t)
	driver := f.addDriver(t, entity.Driver{ID: "drv-1", Name: "Ali", Commission: commission(15)})
	f.addReservation(t, entity.Reservation{
		ID:             "res-r",
		Status:         entity.ReservationStatusCompleted,
		TotalPrice:     33.33,
		PaymentMethod:  entity.PaymentCard,
		AssignedDriver: driver.ID,
	})

	res, err := f.ledgerUC.RecordReservationCompletion(context.Background(), &model.ReservationCompletionRequest{ReservationID: "res-r", ProcessedBy: "admin-1"})
	require.NoError(t, err)
	assert.Equal(t, 5.0, res.Record.CompanyExpense)
	assert.Equal(t, 28.33, res.Record.CompanyRevenue)
	assert.Equal(t, fixedNow, res.Record.Date)
}

func TestRecordReservationCompletionManualDriver(t *testing.T) {
	f := newFixture(t)
	driver := f.addDriver(t, entity.Driver{ID: "m-1", Name: "Veli", DriverType: entity.DriverTypeManual})
	f.addReservation(t, entity.Reservation{
		ID:            "res-m",
		Status:        entity.ReservationStatusCompleted,
		TotalPrice:    50,
		PaymentMethod: entity.PaymentCard,
		DriverID:      driver.ID,
		DriverType:    entity.DriverTypeManual,
		DriverFee:     35,
	})
	f.addReservation(t, entity.Reservation{
		ID:            "res-over",
		Status:        entity.ReservationStatusCompleted,
		TotalPrice:    50,
		PaymentMethod: entity.PaymentCard,
		DriverID:      driver.ID,
		DriverType:    entity.DriverTypeManual,
		DriverFee:     60,
	})

	res, err := f.ledgerUC.RecordReservationCompletion(context.Background(), &model.ReservationCompletionRequest{ReservationID: "res-m", ProcessedBy: "admin-1"})
	require.NoError(t, err)
	assert.Equal(t, 35.0, res.Record.CompanyExpense)
	assert.Equal(t, 15.0, res.Record.CompanyRevenue)
	assert.Equal(t, 35.0, f.getDriver(t, entity.DriverTypeManual, driver.ID).Balance)

	_, err = f.ledgerUC.RecordReservationCompletion(context.Background(), &model.ReservationCompletionRequest{ReservationID: "res-over", ProcessedBy: "admin-1"})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "driverFee", validationErr.Field)
}

func TestRecordReservationCompletionWithoutDriver(t *testing.T) {
	f := newFixture(t)
	f.addReservation(t, entity.Reservation{
		ID:            "res-nd",
		Status:        entity.ReservationStatusCompleted,
		TotalPrice:    70,
		PaymentMethod: entity.PaymentCash,
	})

	res, err := f.ledgerUC.RecordReservationCompletion(context.Background(), &model.ReservationCompletionRequest{ReservationID: "res-nd", ProcessedBy: "admin-1"})
	require.NoError(t, err)
	assert.Equal(t, 70.0, res.Record.CompanyRevenue)
	assert.Zero(t, res.Record.CompanyExpense)
	assert.Nil(t, res.DriverTransaction)
}

func TestRecordReservationCompletionRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addReservation(t, entity.Reservation{ID: "res-open", Status: "in_progress", TotalPrice: 40, PaymentMethod: entity.PaymentCash})
	f.addReservation(t, entity.Reservation{ID: "res-free", Status: entity.ReservationStatusCompleted, TotalPrice: 0, PaymentMethod: entity.PaymentCash})
	f.addReservation(t, entity.Reservation{ID: "res-iban", Status: entity.ReservationStatusCompleted, TotalPrice: 40, PaymentMethod: "transfer"})
	f.addReservation(t, entity.Reservation{ID: "res-ok", Status: entity.ReservationStatusCompleted, TotalPrice: 40, PaymentMethod: entity.PaymentCash})

	var validationErr *ValidationError
	for _, id := range []string{"res-open", "res-free", "res-iban"} {
		_, err := f.ledgerUC.RecordReservationCompletion(ctx, &model.ReservationCompletionRequest{ReservationID: id, ProcessedBy: "admin-1"})
		assert.ErrorAs(t, err, &validationErr, id)
	}

	var notFound *NotFoundError
	_, err := f.ledgerUC.RecordReservationCompletion(ctx, &model.ReservationCompletionRequest{ReservationID: "missing", ProcessedBy: "admin-1"})
	assert.ErrorAs(t, err, &notFound)

	_, err = f.ledgerUC.RecordReservationCompletion(ctx, &model.ReservationCompletionRequest{ReservationID: "res-ok", ProcessedBy: "admin-1"})
	require.NoError(t, err)
	_, err = f.ledgerUC.RecordReservationCompletion(ctx, &model.ReservationCompletionRequest{ReservationID: "res-ok", ProcessedBy: "admin-2"})
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)

	assert.Equal(t, 1, f.store.Count(entity.CollectionCompanyFinancials))
	assert.Equal(t, 1, f.store.Count(entity.CollectionLedgerIntents))
}

func TestRecordRollsBackWhenBalanceUpdateFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	driver := f.addDriver(t, entity.Driver{ID: "drv", Name: "Tx", Balance: 10})
	boom := errors.New("write conflict")
	f.store.Fail(memory.OpUpdate, entity.CollectionSystemDrivers, boom, 1)

	_, err := f.ledgerUC.RecordDriverPayment(ctx, moneyRequest(driver, 5))

	var persistenceErr *PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, f.store.Count(entity.CollectionCompanyFinancials))
	assert.Zero(t, f.store.Count(entity.CollectionFinancialTransactions))
	assert.Equal(t, 10.0, f.getDriver(t, entity.DriverTypeRegular, driver.ID).Balance)
	assert.Empty(t, f.kafka.messages)

	var intents []entity.LedgerIntent
	require.NoError(t, f.store.GetAll(ctx, entity.CollectionLedgerIntents, &intents))
	require.Len(t, intents, 1)
	assert.Equal(t, entity.IntentAborted, intents[0].Status)
	assert.Equal(t, boom.Error(), intents[0].LastError)

	pending, err := f.intents.FindPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRecordFailsCleanlyWhenIntentCannotBeWritten(t *testing.T) {
	f := newFixture(t)
	driver := f.addDriver(t, entity.Driver{ID: "drv", Name: "Tx"})
	f.store.Fail(memory.OpInsert, entity.CollectionLedgerIntents, errors.New("timeout"), 1)

	_, err := f.ledgerUC.RecordDriverCollection(context.Background(), moneyRequest(driver, 5))
	var persistenceErr *PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	assert.Zero(t, f.store.Count(entity.CollectionCompanyFinancials))
}

func TestPartialWriteIsFlaggedAndReplayed(t *testing.T) {
	f := newFixture(t, memory.WithoutTransactions())
	ctx := context.Background()
	driver := f.addDriver(t, entity.Driver{ID: "drv", Name: "NoTx"})
	f.store.Fail(memory.OpUpdate, entity.CollectionSystemDrivers, errors.New("connection reset"), 1)

	_, err := f.ledgerUC.RecordDriverCollection(ctx, moneyRequest(driver, 100))

	var partial *PartialWriteError
	require.ErrorAs(t, err, &partial)
	assert.NotEmpty(t, partial.IntentID)
	assert.Equal(t, 1, f.store.Count(entity.CollectionCompanyFinancials))
	assert.Zero(t, f.getDriver(t, entity.DriverTypeRegular, driver.ID).Balance)

	check, err := f.reconcileUC.ReconcileDriver(ctx, entity.DriverTypeRegular, driver.ID)
	require.NoError(t, err)
	assert.False(t, check.Consistent)

	replay, err := f.reconcileUC.ReplayPendingIntents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, replay.Pending)
	assert.Equal(t, 1, replay.Applied)

	stored := f.getDriver(t, entity.DriverTypeRegular, driver.ID)
	assert.Equal(t, 100.0, stored.Balance)
	assert.Len(t, stored.Transactions, 1)
	assert.Equal(t, 1, f.store.Count(entity.CollectionCompanyFinancials))
	assert.Equal(t, 1, f.store.Count(entity.CollectionFinancialTransactions))

	intent, err := f.intents.FindByID(ctx, partial.IntentID)
	require.NoError(t, err)
	assert.Equal(t, entity.IntentApplied, intent.Status)
	assert.Equal(t, 2, intent.Attempts)

	check, err = f.reconcileUC.ReconcileDriver(ctx, entity.DriverTypeRegular, driver.ID)
	require.NoError(t, err)
	assert.True(t, check.Consistent, check.Issues)
}

func TestReplayIntentIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	driver := f.addDriver(t, entity.Driver{ID: "drv", Name: "Again"})

	res, err := f.ledgerUC.RecordDriverCollection(ctx, moneyRequest(driver, 40))
	require.NoError(t, err)

	intent, err := f.intents.FindByID(ctx, res.Record.IntentID)
	require.NoError(t, err)
	intent.Status = entity.IntentPending

	status, err := f.ledgerUC.ReplayIntent(ctx, intent)
	require.NoError(t, err)
	assert.Equal(t, entity.IntentApplied, status)

	stored := f.getDriver(t, entity.DriverTypeRegular, driver.ID)
	assert.Equal(t, 40.0, stored.Balance)
	assert.Len(t, stored.Transactions, 1)
	assert.Equal(t, 1, f.store.Count(entity.CollectionCompanyFinancials))
	assert.Equal(t, 1, f.store.Count(entity.CollectionFinancialTransactions))
}

func TestReplayFinishesCommittedEntryWithUnmarkedIntent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	driver := f.addDriver(t, entity.Driver{ID: "drv", Name: "Unmarked"})
	f.store.Fail(memory.OpUpdate, entity.CollectionLedgerIntents, errors.New("write concern timeout"), 1)

	res, err := f.ledgerUC.RecordDriverCollection(ctx, moneyRequest(driver, 70))
	require.NoError(t, err)

	intent, err := f.intents.FindByID(ctx, res.Record.IntentID)
	require.NoError(t, err)
	require.Equal(t, entity.IntentPending, intent.Status)

	// re-inserting a committed id would abort a MongoDB transaction
	duplicate := errors.New("E11000 duplicate key error")
	f.store.Fail(memory.OpInsert, entity.CollectionCompanyFinancials, duplicate, 0)
	f.store.Fail(memory.OpInsert, entity.CollectionFinancialTransactions, duplicate, 0)

	replay, err := f.reconcileUC.ReplayPendingIntents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, replay.Pending)
	assert.Equal(t, 1, replay.Applied)
	assert.Zero(t, replay.Failed)

	stored := f.getDriver(t, entity.DriverTypeRegular, driver.ID)
	assert.Equal(t, 70.0, stored.Balance)
	assert.Len(t, stored.Transactions, 1)
	assert.Equal(t, 1, f.store.Count(entity.CollectionCompanyFinancials))
	assert.Equal(t, 1, f.store.Count(entity.CollectionFinancialTransactions))

	intent, err = f.intents.FindByID(ctx, res.Record.IntentID)
	require.NoError(t, err)
	assert.Equal(t, entity.IntentApplied, intent.Status)
}

func TestPublishFailureDoesNotFailRecording(t *testing.T) {
	f := newFixture(t)
	f.kafka.err = errors.New("broker unavailable")
	driver := f.addDriver(t, entity.Driver{ID: "drv", Name: "K"})

	_, err := f.ledgerUC.RecordDriverCollection(context.Background(), moneyRequest(driver, 12))
	require.NoError(t, err)
	assert.Equal(t, 12.0, f.getDriver(t, entity.DriverTypeRegular, driver.ID).Balance)
}

func TestListTransactionsFiltersByDriver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.addDriver(t, entity.Driver{ID: "a", Name: "A"})
	b := f.addDriver(t, entity.Driver{ID: "b", Name: "B"})
	_, err := f.ledgerUC.RecordDriverPayment(ctx, moneyRequest(a, 5))
	require.NoError(t, err)
	_, err = f.ledgerUC.RecordDriverCollection(ctx, moneyRequest(b, 7))
	require.NoError(t, err)

	txns, err := f.ledgerUC.ListTransactions(ctx, &model.ListTransactionsRequest{DriverID: "a"})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, entity.TransactionDebit, txns[0].Type)

	_, err = f.ledgerUC.ListTransactions(ctx, &model.ListTransactionsRequest{Type: "refund"})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestSubscribeLedgerReceivesAppendedRecords(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan entity.LedgerRecord, 4)
	unsubscribe, err := f.ledgerUC.SubscribeLedger(ctx, func(r entity.LedgerRecord) { received <- r })
	require.NoError(t, err)
	defer unsubscribe()

	res, err := f.ledgerUC.RecordManualExpense(ctx, &model.ManualExpenseRequest{
		Category: "office", Description: "Paper", Amount: 3, ProcessedBy: "admin-1",
	})
	require.NoError(t, err)

	select {
	case r := <-received:
		assert.Equal(t, res.Record.ID, r.ID)
	case <-time.After(time.Second):
		t.Fatal("no ledger record received")
	}
}
