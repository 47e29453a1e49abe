package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TransactionKindDeposit    TransactionKind = "DEPOSIT"
	TransactionKindWithdrawal TransactionKind = "WITHDRAWAL"
	TransactionKindTransfer   TransactionKind = "TRANSFER"
)

func (k TransactionKind) Valid() bool {
	switch k {
	case TransactionKindDeposit, TransactionKindWithdrawal, TransactionKindTransfer:
		return true
	}
	return false
}

// Transaction is an immutable ledger entry created atomically with its
// balance effects. SourceAccount is the acting account for single-account
// movements (the credited account on a DEPOSIT, the debited account on a
// WITHDRAWAL); DestinationAccount is set only for TRANSFER.
type Transaction struct {
	ID                 int64
	Kind               TransactionKind
	SourceAccount      int64
	DestinationAccount *int64
	Amount             decimal.Decimal
	Timestamp          time.Time
}

// TransactionFilter narrows a transaction listing. Zero-value fields are
// ignored; the date range is inclusive on both ends.
type TransactionFilter struct {
	Kinds              []TransactionKind
	SourceAccount      *int64
	DestinationAccount *int64
	StartDate          *time.Time
	EndDate            *time.Time
}
