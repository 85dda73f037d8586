package repository

import (
	"context"
	"errors"
	"time"

	"finance-service/src/internal/entity"
	"finance-service/src/pkg/databases/docstore"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	generationDocID = "generation"
	generationField = "value"
)

type LedgerRepository struct {
	DB docstore.Store
}

func NewLedgerRepository(db docstore.Store) *LedgerRepository {
	return &LedgerRepository{
		DB: db,
	}
}

func (r *LedgerRepository) Insert(ctx context.Context, record *entity.LedgerRecord) error {
	id, err := r.DB.Insert(ctx, entity.CollectionCompanyFinancials, record)
	if err != nil {
		return err
	}
	record.ID = id
	return nil
}

func (r *LedgerRepository) FindByID(ctx context.Context, id string) (*entity.LedgerRecord, error) {
	var record entity.LedgerRecord
	if err := r.DB.Get(ctx, entity.CollectionCompanyFinancials, id, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *LedgerRepository) FindAll(ctx context.Context) ([]entity.LedgerRecord, error) {
	var records []entity.LedgerRecord
	err := r.DB.Find(ctx, entity.CollectionCompanyFinancials, docstore.Query{
		OrderBy: []docstore.OrderBy{{Field: "date"}},
	}, &records)
	return records, err
}

// FindByDateRange returns records with start <= date <= end.
func (r *LedgerRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]entity.LedgerRecord, error) {
	var records []entity.LedgerRecord
	err := r.DB.Find(ctx, entity.CollectionCompanyFinancials, docstore.Query{
		Filters: []docstore.Filter{
			docstore.Where("date", docstore.OpGte, start),
			docstore.Where("date", docstore.OpLte, end),
		},
		OrderBy: []docstore.OrderBy{{Field: "date"}},
	}, &records)
	return records, err
}

func (r *LedgerRepository) FindByDriver(ctx context.Context, driverID string, driverType entity.DriverType) ([]entity.LedgerRecord, error) {
	var records []entity.LedgerRecord
	err := r.DB.Find(ctx, entity.CollectionCompanyFinancials, docstore.Query{
		Filters: []docstore.Filter{
			docstore.Where("driverId", docstore.OpEq, driverID),
			docstore.Where("driverType", docstore.OpEq, string(driverType)),
		},
		OrderBy: []docstore.OrderBy{{Field: "date"}},
	}, &records)
	return records, err
}

// Generation is bumped with every appended entry; cached reports are keyed
// by it.
func (r *LedgerRepository) Generation(ctx context.Context) (int64, error) {
	var meta struct {
		Value int64 `bson:"value"`
	}
	err := r.DB.Get(ctx, entity.CollectionLedgerMeta, generationDocID, &meta)
	if errors.Is(err, docstore.ErrNotFound) {
		return 0, nil
	}
	return meta.Value, err
}

func (r *LedgerRepository) BumpGeneration(ctx context.Context) (int64, error) {
	return r.DB.Increment(ctx, entity.CollectionLedgerMeta, generationDocID, generationField, 1)
}

func (r *LedgerRepository) Subscribe(ctx context.Context, fn func(entity.LedgerRecord)) (func(), error) {
	return r.DB.Subscribe(ctx, entity.CollectionCompanyFinancials, func(change docstore.Change) {
		if change.Type != docstore.ChangeInsert || change.Document == nil {
			return
		}
		var record entity.LedgerRecord
		if err := bson.Unmarshal(change.Document, &record); err != nil {
			return
		}
		fn(record)
	})
}
