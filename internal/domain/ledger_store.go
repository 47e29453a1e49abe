package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// LedgerScope is an open atomic unit of work against the store. All calls
// made through a scope commit or roll back together.
type LedgerScope interface {
	// AdjustBalance applies balance += delta as a single atomic update
	// and returns the post-adjustment account. It reports a missing
	// account with AccountNotFoundError but does not enforce
	// non-negativity: a violating adjustment must remain rollback-able
	// together with any sibling adjustment in the same scope.
	AdjustBalance(ctx context.Context, number int64, delta decimal.Decimal) (Account, error)

	// InsertTransaction persists the ledger entry, assigning its ID and
	// timestamp.
	InsertTransaction(ctx context.Context, transaction Transaction) (Transaction, error)
}

// LedgerStore opens atomic scopes at the strongest isolation level the
// store supports.
type LedgerStore interface {
	// ExecuteSerializable runs fn inside a serializable atomic scope,
	// committing when fn returns nil and rolling back otherwise. A
	// commit or statement failure caused by a serialization conflict is
	// reported as ErrSerializationConflict.
	ExecuteSerializable(ctx context.Context, fn func(scope LedgerScope) error) error
}

type AccountRepository interface {
	Create(ctx context.Context, account Account) (Account, error)
	GetByNumber(ctx context.Context, number int64) (Account, error)
	// List returns a page of accounts ordered by number ascending,
	// together with the total count.
	List(ctx context.Context, page, pageSize int) ([]Account, int64, error)
	// Delete removes the account and returns its last state. There is
	// no referential-integrity check against transactions.
	Delete(ctx context.Context, number int64) (Account, error)
}

type TransactionRepository interface {
	GetByID(ctx context.Context, id int64) (Transaction, error)
	// List returns a page of transactions ordered by timestamp
	// descending, together with the total count of matches.
	List(ctx context.Context, filter TransactionFilter, page, pageSize int) ([]Transaction, int64, error)
}
