package usecase

import (
	"context"
	"testing"
	"time"

	"finance-service/src/internal/entity"
	"finance-service/src/internal/gateway/messaging"
	"finance-service/src/internal/repository"
	"finance-service/src/pkg/databases/memory"
	"finance-service/src/pkg/log"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

type message struct {
	topic string
	key   string
	value []byte
}

type fakeKafka struct {
	messages []message
	err      error
}

func (k *fakeKafka) Publish(topic, key string, value []byte) error {
	if k.err != nil {
		return k.err
	}
	k.messages = append(k.messages, message{topic: topic, key: key, value: value})
	return nil
}

func (k *fakeKafka) Close() error { return nil }

type fixture struct {
	store       *memory.Store
	kafka       *fakeKafka
	drivers     *repository.DriverRepository
	ledger      *repository.LedgerRepository
	intents     *repository.IntentRepository
	ledgerUC    *LedgerUseCase
	reportUC    *ReportUseCase
	reconcileUC *ReconciliationUseCase
	exportUC    *ExportUseCase
}

func newFixture(t *testing.T, opts ...memory.Option) *fixture {
	t.Helper()
	store := memory.New(opts...)
	kafka := &fakeKafka{}
	logger := log.Discard()
	producer := messaging.NewLedgerProducer(kafka, logger, messaging.Topics{})

	drivers := repository.NewDriverRepository(store)
	ledger := repository.NewLedgerRepository(store)
	intents := repository.NewIntentRepository(store)

	ledgerUC := NewLedgerUseCase(
		logger,
		validator.New(),
		store,
		ledger,
		repository.NewTransactionRepository(store),
		drivers,
		repository.NewReservationRepository(store),
		intents,
		producer,
	)
	ledgerUC.Now = func() time.Time { return fixedNow }

	reportUC := NewReportUseCase(logger, ledger, nil, time.UTC)
	reportUC.Now = func() time.Time { return fixedNow }

	reconcileUC := NewReconciliationUseCase(logger, drivers, ledger, intents, ledgerUC, producer)
	reconcileUC.Now = func() time.Time { return fixedNow }

	return &fixture{
		store:       store,
		kafka:       kafka,
		drivers:     drivers,
		ledger:      ledger,
		intents:     intents,
		ledgerUC:    ledgerUC,
		reportUC:    reportUC,
		reconcileUC: reconcileUC,
		exportUC:    NewExportUseCase(logger, reportUC, ledger),
	}
}

func (f *fixture) addDriver(t *testing.T, driver entity.Driver) *entity.Driver {
	t.Helper()
	if driver.DriverType == "" {
		driver.DriverType = entity.DriverTypeRegular
	}
	require.NoError(t, f.drivers.Create(context.Background(), &driver))
	return &driver
}

func (f *fixture) getDriver(t *testing.T, driverType entity.DriverType, id string) *entity.Driver {
	t.Helper()
	driver, err := f.drivers.FindByID(context.Background(), driverType, id)
	require.NoError(t, err)
	return driver
}

func (f *fixture) addReservation(t *testing.T, reservation entity.Reservation) {
	t.Helper()
	_, err := f.store.Insert(context.Background(), entity.CollectionReservations, reservation)
	require.NoError(t, err)
}

// addRecord appends a ledger record directly, bypassing the recorder.
func (f *fixture) addRecord(t *testing.T, record entity.LedgerRecord) {
	t.Helper()
	require.NoError(t, f.ledger.Insert(context.Background(), &record))
	_, err := f.ledger.BumpGeneration(context.Background())
	require.NoError(t, err)
}

func commission(v float64) *float64 {
	return &v
}
