package entity

const (
	CollectionCompanyFinancials     = "company_financials"
	CollectionFinancialTransactions = "financial_transactions"
	CollectionSystemDrivers         = "users"
	CollectionManualDrivers         = "manual_drivers"
	CollectionReservations          = "reservations"
	CollectionLedgerIntents         = "ledger_intents"
	CollectionLedgerMeta            = "ledger_meta"
)
