package domain

import "github.com/shopspring/decimal"

// Account is a balance holder identified by a caller-supplied positive number.
// Balances never go negative in any committed state; that invariant is
// enforced by the ledger service, not by the account store.
type Account struct {
	Number  int64
	Balance decimal.Decimal
}
