package repository

import (
	"context"
	"time"

	"finance-service/src/internal/entity"
	"finance-service/src/pkg/databases/docstore"
)

type IntentRepository struct {
	DB docstore.Store
}

func NewIntentRepository(db docstore.Store) *IntentRepository {
	return &IntentRepository{
		DB: db,
	}
}

func (r *IntentRepository) Create(ctx context.Context, intent *entity.LedgerIntent) error {
	now := time.Now()
	intent.CreatedAt = now
	intent.UpdatedAt = now
	if intent.Status == "" {
		intent.Status = entity.IntentPending
	}
	id, err := r.DB.Insert(ctx, entity.CollectionLedgerIntents, intent)
	if err != nil {
		return err
	}
	intent.ID = id
	return nil
}

func (r *IntentRepository) MarkStatus(ctx context.Context, intent *entity.LedgerIntent, status entity.IntentStatus, cause error) error {
	intent.Status = status
	intent.UpdatedAt = time.Now()
	intent.LastError = ""
	if cause != nil {
		intent.LastError = cause.Error()
	}
	return r.DB.Update(ctx, entity.CollectionLedgerIntents, intent.ID, docstore.Fields{
		"status":    intent.Status,
		"attempts":  intent.Attempts,
		"lastError": intent.LastError,
		"updatedAt": intent.UpdatedAt,
	})
}

func (r *IntentRepository) FindPending(ctx context.Context) ([]entity.LedgerIntent, error) {
	var intents []entity.LedgerIntent
	err := r.DB.Find(ctx, entity.CollectionLedgerIntents, docstore.Query{
		Filters: []docstore.Filter{docstore.Where("status", docstore.OpEq, string(entity.IntentPending))},
		OrderBy: []docstore.OrderBy{{Field: "createdAt"}},
	}, &intents)
	return intents, err
}

func (r *IntentRepository) FindByID(ctx context.Context, id string) (*entity.LedgerIntent, error) {
	var intent entity.LedgerIntent
	if err := r.DB.Get(ctx, entity.CollectionLedgerIntents, id, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}
