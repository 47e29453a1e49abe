package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrRecordNotFound is returned when a referenced account or
	// transaction does not exist.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateAccount is returned when creating an account whose
	// number is already taken.
	ErrDuplicateAccount = errors.New("account number already exists")

	// ErrInvalidArgument marks malformed requests rejected before any
	// store access. Wrap it with the concrete reason.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSerializationConflict is returned when the store could not
	// serialize an atomic scope against concurrent activity. It is the
	// only error the ledger service retries.
	ErrSerializationConflict = errors.New("could not serialize transaction against concurrent activity")
)

// AccountNotFoundError names the missing account so callers can report it.
type AccountNotFoundError struct {
	Number int64
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account %d not found", e.Number)
}

func (e *AccountNotFoundError) Is(target error) bool {
	return target == ErrRecordNotFound
}

// InsufficientFundsError is the business rejection for a movement that
// would drive the named account's balance negative. The whole atomic
// scope is rolled back; no partial balance change persists.
type InsufficientFundsError struct {
	Number  int64
	Balance decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("account %d has insufficient funds", e.Number)
}
