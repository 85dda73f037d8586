package repository

import (
	"context"

	"finance-service/src/internal/entity"
	"finance-service/src/pkg/databases/docstore"
)

type TransactionRepository struct {
	DB docstore.Store
}

func NewTransactionRepository(db docstore.Store) *TransactionRepository {
	return &TransactionRepository{
		DB: db,
	}
}

func (r *TransactionRepository) Insert(ctx context.Context, txn *entity.FinancialTransaction) error {
	id, err := r.DB.Insert(ctx, entity.CollectionFinancialTransactions, txn)
	if err != nil {
		return err
	}
	txn.ID = id
	return nil
}

type TransactionFilter struct {
	DriverID string
	Type     entity.TransactionDirection
	Limit    int64
}

// FindRecent lists transactions newest first.
func (r *TransactionRepository) FindRecent(ctx context.Context, filter TransactionFilter) ([]entity.FinancialTransaction, error) {
	q := docstore.Query{
		OrderBy: []docstore.OrderBy{{Field: "date", Desc: true}},
		Limit:   filter.Limit,
	}
	if filter.DriverID != "" {
		q.Filters = append(q.Filters, docstore.Where("driverId", docstore.OpEq, filter.DriverID))
	}
	if filter.Type != "" {
		q.Filters = append(q.Filters, docstore.Where("type", docstore.OpEq, string(filter.Type)))
	}
	var txns []entity.FinancialTransaction
	err := r.DB.Find(ctx, entity.CollectionFinancialTransactions, q, &txns)
	return txns, err
}

func (r *TransactionRepository) FindByLedgerRecordID(ctx context.Context, ledgerRecordID string) ([]entity.FinancialTransaction, error) {
	var txns []entity.FinancialTransaction
	err := r.DB.Find(ctx, entity.CollectionFinancialTransactions, docstore.Query{
		Filters: []docstore.Filter{docstore.Where("ledgerRecordId", docstore.OpEq, ledgerRecordID)},
	}, &txns)
	return txns, err
}
