package model

import "time"

type Event interface {
	GetId() string
}

type LedgerRecordedEvent struct {
	EventID        string    `json:"event_id"`
	RecordID       string    `json:"record_id"`
	Type           string    `json:"type"`
	Amount         float64   `json:"amount"`
	CompanyRevenue float64   `json:"company_revenue"`
	CompanyExpense float64   `json:"company_expense"`
	PaymentMethod  string    `json:"payment_method,omitempty"`
	DriverID       string    `json:"driver_id,omitempty"`
	DriverType     string    `json:"driver_type,omitempty"`
	DriverBalance  *float64  `json:"driver_balance,omitempty"`
	Date           time.Time `json:"date"`
	ProcessedBy    string    `json:"processed_by"`
}

func (e *LedgerRecordedEvent) GetId() string {
	return e.EventID
}

type ReconciliationAlertEvent struct {
	EventID       string    `json:"event_id"`
	DriverID      string    `json:"driver_id"`
	DriverType    string    `json:"driver_type"`
	StoredBalance string    `json:"stored_balance"`
	ChainBalance  string    `json:"chain_balance"`
	LedgerBalance string    `json:"ledger_balance"`
	Issues        []string  `json:"issues"`
	DetectedAt    time.Time `json:"detected_at"`
}

func (e *ReconciliationAlertEvent) GetId() string {
	return e.EventID
}
