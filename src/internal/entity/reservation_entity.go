package entity

import "time"

const ReservationStatusCompleted = "completed"

// Reservation is owned by the booking side; the ledger only reads it.
type Reservation struct {
	ID             string        `bson:"_id,omitempty" json:"id"`
	Status         string        `bson:"status" json:"status"`
	TotalPrice     float64       `bson:"totalPrice" json:"totalPrice"`
	PaymentMethod  PaymentMethod `bson:"paymentMethod" json:"paymentMethod"`
	DriverID       string        `bson:"driverId,omitempty" json:"driverId,omitempty"`
	AssignedDriver string        `bson:"assignedDriver,omitempty" json:"assignedDriver,omitempty"`
	DriverType     DriverType    `bson:"driverType,omitempty" json:"driverType,omitempty"`
	DriverFee      float64       `bson:"driverFee,omitempty" json:"driverFee,omitempty"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	CompletedAt    *time.Time    `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

func (r *Reservation) ResolvedDriverID() string {
	if r.DriverID != "" {
		return r.DriverID
	}
	return r.AssignedDriver
}

// ResolvedDriverType defaults to a system driver when the booking did not
// tag the assignment.
func (r *Reservation) ResolvedDriverType() DriverType {
	if r.DriverType == "" {
		return DriverTypeRegular
	}
	return r.DriverType
}
