package repository

import (
	"context"
	"time"

	"finance-service/src/internal/entity"
	"finance-service/src/pkg/databases/docstore"
)

type DriverRepository struct {
	DB docstore.Store
}

func NewDriverRepository(db docstore.Store) *DriverRepository {
	return &DriverRepository{
		DB: db,
	}
}

func (r *DriverRepository) Create(ctx context.Context, driver *entity.Driver) error {
	collection, err := driver.DriverType.Collection()
	if err != nil {
		return err
	}
	if driver.Status == "" {
		driver.Status = entity.DriverStatusActive
	}
	now := time.Now()
	if driver.CreatedAt.IsZero() {
		driver.CreatedAt = now
	}
	driver.UpdatedAt = now
	id, err := r.DB.Insert(ctx, collection, driver)
	if err != nil {
		return err
	}
	driver.ID = id
	return nil
}

func (r *DriverRepository) FindByID(ctx context.Context, driverType entity.DriverType, id string) (*entity.Driver, error) {
	collection, err := driverType.Collection()
	if err != nil {
		return nil, err
	}
	var driver entity.Driver
	if err := r.DB.Get(ctx, collection, id, &driver); err != nil {
		return nil, err
	}
	// documents written by the admin panel may predate the type tag
	if driver.DriverType == "" {
		driver.DriverType = driverType
	}
	return &driver, nil
}

func (r *DriverRepository) FindAll(ctx context.Context, driverType entity.DriverType) ([]entity.Driver, error) {
	collection, err := driverType.Collection()
	if err != nil {
		return nil, err
	}
	var drivers []entity.Driver
	if err := r.DB.GetAll(ctx, collection, &drivers); err != nil {
		return nil, err
	}
	for i := range drivers {
		if drivers[i].DriverType == "" {
			drivers[i].DriverType = driverType
		}
	}
	return drivers, nil
}

// UpdateBalance persists balance and the transactions array in one update.
func (r *DriverRepository) UpdateBalance(ctx context.Context, driver *entity.Driver) error {
	collection, err := driver.DriverType.Collection()
	if err != nil {
		return err
	}
	driver.UpdatedAt = time.Now()
	return r.DB.Update(ctx, collection, driver.ID, docstore.Fields{
		"balance":      driver.Balance,
		"transactions": driver.Transactions,
		"updatedAt":    driver.UpdatedAt,
	})
}
