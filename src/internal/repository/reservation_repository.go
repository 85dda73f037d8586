package repository

import (
	"context"

	"finance-service/src/internal/entity"
	"finance-service/src/pkg/databases/docstore"
)

type ReservationRepository struct {
	DB docstore.Store
}

func NewReservationRepository(db docstore.Store) *ReservationRepository {
	return &ReservationRepository{
		DB: db,
	}
}

func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*entity.Reservation, error) {
	var reservation entity.Reservation
	if err := r.DB.Get(ctx, entity.CollectionReservations, id, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}
