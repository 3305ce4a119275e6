package domain

import "time"

// Wallet is the balance projection of a user account. The balance is stored
// in minor currency units (cents) and is always integer arithmetic.
type Wallet struct {
	ID        string
	Balance   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanDeposit reports whether the wallet accepts deposits. Deposits are
// blocked while the balance is negative (a state only reachable by reversing
// a deposit whose funds were already transferred out).
func (w *Wallet) CanDeposit() bool {
	return w.Balance >= 0
}

// CanDebit reports whether the wallet holds at least amount.
func (w *Wallet) CanDebit(amount int64) bool {
	return w.Balance >= amount
}
