package entity

import "time"

type LedgerType string

const (
	LedgerReservationCompletion LedgerType = "reservation_completion"
	LedgerDriverPayment         LedgerType = "driver_payment"
	LedgerDriverCollection      LedgerType = "driver_collection"
	LedgerManualExpense         LedgerType = "manual_expense"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// LedgerRecord is an immutable company_financials entry.
type LedgerRecord struct {
	ID             string        `bson:"_id,omitempty" json:"id"`
	Type           LedgerType    `bson:"type" json:"type"`
	Amount         float64       `bson:"amount" json:"amount"`
	CompanyRevenue float64       `bson:"companyRevenue" json:"companyRevenue"`
	CompanyExpense float64       `bson:"companyExpense" json:"companyExpense"`
	PaymentMethod  PaymentMethod `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	ReservationID  string        `bson:"reservationId,omitempty" json:"reservationId,omitempty"`
	DriverID       string        `bson:"driverId,omitempty" json:"driverId,omitempty"`
	DriverType     DriverType    `bson:"driverType,omitempty" json:"driverType,omitempty"`
	DriverName     string        `bson:"driverName,omitempty" json:"driverName,omitempty"`
	Category       string        `bson:"category,omitempty" json:"category,omitempty"`
	Description    string        `bson:"description,omitempty" json:"description,omitempty"`
	Note           string        `bson:"note,omitempty" json:"note,omitempty"`
	Date           time.Time     `bson:"date" json:"date"`
	ProcessedBy    string        `bson:"processedBy" json:"processedBy"`
	IntentID       string        `bson:"intentId" json:"intentId"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
}

type TransactionDirection string

const (
	TransactionCredit TransactionDirection = "credit"
	TransactionDebit  TransactionDirection = "debit"
)

// FinancialTransaction is the human-readable mirror of a ledger record
// shown in list views.
type FinancialTransaction struct {
	ID             string               `bson:"_id,omitempty" json:"id"`
	Type           TransactionDirection `bson:"type" json:"type"`
	Amount         float64              `bson:"amount" json:"amount"`
	Description    string               `bson:"description" json:"description"`
	Category       string               `bson:"category" json:"category"`
	Date           time.Time            `bson:"date" json:"date"`
	Source         string               `bson:"source" json:"source"`
	DriverID       string               `bson:"driverId,omitempty" json:"driverId,omitempty"`
	DriverType     DriverType           `bson:"driverType,omitempty" json:"driverType,omitempty"`
	DriverName     string               `bson:"driverName,omitempty" json:"driverName,omitempty"`
	LedgerRecordID string               `bson:"ledgerRecordId" json:"ledgerRecordId"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
	CreatedBy      string               `bson:"createdBy" json:"createdBy"`
}
