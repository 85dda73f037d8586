package converter

import (
	"finance-service/src/internal/model"

	"github.com/google/uuid"
)

func ReconciliationToAlert(result *model.ReconciliationResult) *model.ReconciliationAlertEvent {
	return &model.ReconciliationAlertEvent{
		EventID:       uuid.NewString(),
		DriverID:      result.DriverID,
		DriverType:    result.DriverType,
		StoredBalance: result.StoredBalance.String(),
		ChainBalance:  result.ChainBalance.String(),
		LedgerBalance: result.LedgerBalance.String(),
		Issues:        result.Issues,
		DetectedAt:    result.CheckedAt,
	}
}
