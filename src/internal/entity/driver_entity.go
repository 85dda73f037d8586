package entity

import (
	"fmt"
	"time"
)

type DriverType string

const (
	DriverTypeRegular DriverType = "regular"
	DriverTypeManual  DriverType = "manual"
)

func (t DriverType) Valid() bool {
	return t == DriverTypeRegular || t == DriverTypeManual
}

// Collection returns where drivers of this type are stored.
func (t DriverType) Collection() (string, error) {
	switch t {
	case DriverTypeRegular:
		return CollectionSystemDrivers, nil
	case DriverTypeManual:
		return CollectionManualDrivers, nil
	}
	return "", fmt.Errorf("unknown driver type %q", t)
}

const DriverStatusActive = "active"

// Driver is a system driver (users) or a manual driver (manual_drivers).
// Balance > 0 means the company still owes the driver.
type Driver struct {
	ID           string              `bson:"_id,omitempty" json:"id"`
	Name         string              `bson:"name" json:"name"`
	Phone        string              `bson:"phone,omitempty" json:"phone,omitempty"`
	Email        string              `bson:"email,omitempty" json:"email,omitempty"`
	DriverType   DriverType          `bson:"driverType" json:"driverType"`
	Commission   *float64            `bson:"commission,omitempty" json:"commission,omitempty"`
	Balance      float64             `bson:"balance" json:"balance"`
	Transactions []DriverTransaction `bson:"transactions" json:"transactions"`
	Status       string              `bson:"status" json:"status"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// CommissionRate is the share of a reservation price kept by the driver,
// in percent. Manual drivers negotiate per trip and have none.
func (d *Driver) CommissionRate() float64 {
	if d.DriverType != DriverTypeRegular || d.Commission == nil {
		return 0
	}
	return *d.Commission
}

type DriverTransactionType string

const (
	DriverTransactionPayment    DriverTransactionType = "payment"
	DriverTransactionCollection DriverTransactionType = "collection"
	DriverTransactionEarning    DriverTransactionType = "earning"
)

// DriverTransaction is one entry of the driver's embedded ledger mirror.
type DriverTransaction struct {
	ID            string                `bson:"id" json:"id"`
	Type          DriverTransactionType `bson:"type" json:"type"`
	Amount        float64               `bson:"amount" json:"amount"`
	Note          string                `bson:"note" json:"note"`
	Date          time.Time             `bson:"date" json:"date"`
	BalanceBefore float64               `bson:"balanceBefore" json:"balanceBefore"`
	BalanceAfter  float64               `bson:"balanceAfter" json:"balanceAfter"`
	ProcessedBy   string                `bson:"processedBy" json:"processedBy"`
	ReservationID string                `bson:"reservationId,omitempty" json:"reservationId,omitempty"`
}
