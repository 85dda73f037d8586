package model

import "finance-service/src/internal/entity"

type DriverMoneyRequest struct {
	DriverID    string  `json:"driverId" validate:"required,max=128"`
	DriverType  string  `json:"driverType" validate:"required,oneof=regular manual"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Note        string  `json:"note" validate:"max=500"`
	ProcessedBy string  `json:"-" validate:"required,max=128"`
}

type ManualExpenseRequest struct {
	Category    string  `json:"category" validate:"required,max=100"`
	Description string  `json:"description" validate:"required,max=500"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Note        string  `json:"note" validate:"max=500"`
	ProcessedBy string  `json:"-" validate:"required,max=128"`
}

type ReservationCompletionRequest struct {
	ReservationID string `json:"reservationId" validate:"required,max=128"`
	ProcessedBy   string `json:"-" validate:"required,max=128"`
}

type ListTransactionsRequest struct {
	DriverID string `query:"driverId" validate:"max=128"`
	Type     string `query:"type" validate:"omitempty,oneof=credit debit"`
	Limit    int64  `query:"limit" validate:"gte=0,lte=500"`
}

// RecordResult is what one recorded entry produced.
type RecordResult struct {
	Record            entity.LedgerRecord
	Transaction       entity.FinancialTransaction
	DriverTransaction *entity.DriverTransaction
	DriverBalance     *float64
}

type RecordResponse struct {
	Record            entity.LedgerRecord         `json:"record"`
	Transaction       entity.FinancialTransaction `json:"transaction"`
	DriverTransaction *entity.DriverTransaction   `json:"driverTransaction,omitempty"`
	DriverBalance     *float64                    `json:"driverBalance,omitempty"`
}
