package usecase

import (
	"fmt"
	"math"

	"finance-service/src/internal/entity"

	"github.com/shopspring/decimal"
)

func validateAmount(field string, amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return &ValidationError{Field: field, Message: "must be a finite number"}
	}
	if amount <= 0 {
		return &ValidationError{Field: field, Message: "must be greater than zero"}
	}
	return nil
}

// signedDelta converts an effect into its balance change. Payments settle
// what the company owes; collections and earnings add to it.
func signedDelta(t entity.DriverTransactionType, amount float64) (decimal.Decimal, error) {
	d := decimal.NewFromFloat(amount)
	switch t {
	case entity.DriverTransactionPayment:
		return d.Neg(), nil
	case entity.DriverTransactionCollection, entity.DriverTransactionEarning:
		return d, nil
	}
	return decimal.Zero, &ValidationError{Field: "type", Message: fmt.Sprintf("unknown driver transaction type %q", t)}
}

// ApplyDriverEffect moves driver's balance by effect and appends the
// matching transaction to its history. The driver is left untouched when
// the effect is rejected.
func ApplyDriverEffect(driver *entity.Driver, effect entity.DriverEffect) (entity.DriverTransaction, error) {
	if err := validateAmount("amount", effect.Amount); err != nil {
		return entity.DriverTransaction{}, err
	}
	delta, err := signedDelta(effect.Type, effect.Amount)
	if err != nil {
		return entity.DriverTransaction{}, err
	}

	before := decimal.NewFromFloat(driver.Balance)
	after := before.Add(delta)
	txn := entity.DriverTransaction{
		ID:            effect.EntryID,
		Type:          effect.Type,
		Amount:        effect.Amount,
		Note:          effect.Note,
		Date:          effect.Date,
		BalanceBefore: driver.Balance,
		BalanceAfter:  after.InexactFloat64(),
		ProcessedBy:   effect.ProcessedBy,
		ReservationID: effect.ReservationID,
	}
	driver.Balance = txn.BalanceAfter
	driver.Transactions = append(driver.Transactions, txn)
	return txn, nil
}

func findDriverTransaction(driver *entity.Driver, id string) *entity.DriverTransaction {
	for i := range driver.Transactions {
		if driver.Transactions[i].ID == id {
			txn := driver.Transactions[i]
			return &txn
		}
	}
	return nil
}

// VerifyTransactionChain folds a driver's history starting at the first
// entry's balanceBefore and reports every entry whose recorded before/after
// does not follow from the one preceding it.
func VerifyTransactionChain(txns []entity.DriverTransaction) (decimal.Decimal, []string) {
	var issues []string
	running := decimal.Zero
	if len(txns) > 0 {
		running = decimal.NewFromFloat(txns[0].BalanceBefore)
	}
	for i, txn := range txns {
		delta, err := signedDelta(txn.Type, txn.Amount)
		if err != nil {
			issues = append(issues, fmt.Sprintf("transaction %s: %v", txn.ID, err))
			continue
		}
		before := decimal.NewFromFloat(txn.BalanceBefore)
		after := decimal.NewFromFloat(txn.BalanceAfter)
		if !before.Equal(running) {
			issues = append(issues, fmt.Sprintf("transaction %d (%s) starts at %s, expected %s", i, txn.ID, before, running))
		}
		if !before.Add(delta).Equal(after) {
			issues = append(issues, fmt.Sprintf("transaction %d (%s) ends at %s, expected %s", i, txn.ID, after, before.Add(delta)))
		}
		running = running.Add(delta)
	}
	return running, issues
}
