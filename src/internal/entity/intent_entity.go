package entity

import "time"

type IntentStatus string

const (
	IntentPending IntentStatus = "pending"
	IntentApplied IntentStatus = "applied"
	IntentAborted IntentStatus = "aborted"
)

// DriverEffect is the balance change an entry applies to one driver.
type DriverEffect struct {
	EntryID       string                `bson:"entryId" json:"entryId"`
	DriverID      string                `bson:"driverId" json:"driverId"`
	DriverType    DriverType            `bson:"driverType" json:"driverType"`
	Type          DriverTransactionType `bson:"type" json:"type"`
	Amount        float64               `bson:"amount" json:"amount"`
	Note          string                `bson:"note" json:"note"`
	Date          time.Time             `bson:"date" json:"date"`
	ProcessedBy   string                `bson:"processedBy" json:"processedBy"`
	ReservationID string                `bson:"reservationId,omitempty" json:"reservationId,omitempty"`
}

// LedgerIntent is written before an entry's records so that an entry
// interrupted halfway can be found and finished.
type LedgerIntent struct {
	ID          string               `bson:"_id,omitempty" json:"id"`
	Status      IntentStatus         `bson:"status" json:"status"`
	Record      LedgerRecord         `bson:"record" json:"record"`
	Transaction FinancialTransaction `bson:"transaction" json:"transaction"`
	Driver      *DriverEffect        `bson:"driver,omitempty" json:"driver,omitempty"`
	Attempts    int                  `bson:"attempts" json:"attempts"`
	LastError   string               `bson:"lastError,omitempty" json:"lastError,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}
