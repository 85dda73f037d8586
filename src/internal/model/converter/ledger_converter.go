package converter

import (
	"finance-service/src/internal/model"
)

func RecordToResponse(result *model.RecordResult) *model.RecordResponse {
	return &model.RecordResponse{
		Record:            result.Record,
		Transaction:       result.Transaction,
		DriverTransaction: result.DriverTransaction,
		DriverBalance:     result.DriverBalance,
	}
}

func RecordToEvent(result *model.RecordResult) *model.LedgerRecordedEvent {
	record := result.Record
	return &model.LedgerRecordedEvent{
		EventID:        record.IntentID,
		RecordID:       record.ID,
		Type:           string(record.Type),
		Amount:         record.Amount,
		CompanyRevenue: record.CompanyRevenue,
		CompanyExpense: record.CompanyExpense,
		PaymentMethod:  string(record.PaymentMethod),
		DriverID:       record.DriverID,
		DriverType:     string(record.DriverType),
		DriverBalance:  result.DriverBalance,
		Date:           record.Date,
		ProcessedBy:    record.ProcessedBy,
	}
}
