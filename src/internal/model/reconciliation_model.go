package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReconciliationResult struct {
	DriverID      string          `json:"driverId"`
	DriverType    string          `json:"driverType"`
	DriverName    string          `json:"driverName"`
	StoredBalance decimal.Decimal `json:"storedBalance"`
	ChainBalance  decimal.Decimal `json:"chainBalance"`
	LedgerBalance decimal.Decimal `json:"ledgerBalance"`
	Consistent    bool            `json:"consistent"`
	Issues        []string        `json:"issues,omitempty"`
	CheckedAt     time.Time       `json:"checkedAt"`
}

type ReconciliationRun struct {
	Checked      int                    `json:"checked"`
	Inconsistent int                    `json:"inconsistent"`
	Results      []ReconciliationResult `json:"results"`
}

type ReplayResult struct {
	Pending int `json:"pending"`
	Applied int `json:"applied"`
	Aborted int `json:"aborted"`
	Failed  int `json:"failed"`
}
