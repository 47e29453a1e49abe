package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/renancpin/concurrent-transactions/internal/domain"
	"github.com/renancpin/concurrent-transactions/internal/logger"
)

const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

// LedgerStore opens serializable database transactions as ledger scopes.
// All coordination between concurrent movements is delegated to the
// database's transaction manager; no application-level locks are held.
type LedgerStore struct {
	db *sql.DB
}

func NewLedgerStore(db *sql.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

func (s *LedgerStore) ExecuteSerializable(ctx context.Context, fn func(scope domain.LedgerScope) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin ledger scope: %w", err)
	}

	if err := fn(&ledgerScope{tx: tx}); err != nil {
		_ = tx.Rollback()
		return classifyScopeError(err)
	}

	if err := tx.Commit(); err != nil {
		return classifyScopeError(fmt.Errorf("commit ledger scope: %w", err))
	}

	return nil
}

type ledgerScope struct {
	tx *sql.Tx
}

// AdjustBalance stages balance += delta as a single atomic update, so the
// read-modify-write never leaves the transaction manager's visibility.
// The resulting balance may be negative inside the scope; the caller
// decides whether to commit.
func (s *ledgerScope) AdjustBalance(ctx context.Context, number int64, delta decimal.Decimal) (domain.Account, error) {
	const query = `
UPDATE accounts
SET balance = balance + $2
WHERE number = $1
RETURNING number, balance`

	var account domain.Account
	if err := s.tx.QueryRowContext(ctx, query, number, delta).
		Scan(&account.Number, &account.Balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, &domain.AccountNotFoundError{Number: number}
		}
		logger.Error("ledger scope adjust balance failed", err, logger.Fields{
			"number": number,
		})
		return domain.Account{}, fmt.Errorf("adjust balance: %w", err)
	}

	return account, nil
}

func (s *ledgerScope) InsertTransaction(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	const query = `
INSERT INTO transactions (kind, source_account, destination_account, amount)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`

	var destination sql.NullInt64
	if transaction.DestinationAccount != nil {
		destination = sql.NullInt64{Int64: *transaction.DestinationAccount, Valid: true}
	}

	if err := s.tx.QueryRowContext(
		ctx,
		query,
		string(transaction.Kind),
		transaction.SourceAccount,
		destination,
		transaction.Amount,
	).Scan(&transaction.ID, &transaction.Timestamp); err != nil {
		logger.Error("ledger scope insert transaction failed", err, logger.Fields{
			"kind":          transaction.Kind,
			"sourceAccount": transaction.SourceAccount,
		})
		return domain.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	return transaction, nil
}

// classifyScopeError converts the database's serialization-failure and
// deadlock signals into ErrSerializationConflict, which is the only
// condition the ledger service retries. Every other error passes through
// unchanged so business rejections keep their identity.
func classifyScopeError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqSerializationFailure, pqDeadlockDetected:
			return fmt.Errorf("%w: %s", domain.ErrSerializationConflict, pqErr.Message)
		}
	}
	return err
}
