package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/renancpin/concurrent-transactions/internal/domain"
	"github.com/renancpin/concurrent-transactions/internal/logger"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
INSERT INTO accounts (number, balance)
VALUES ($1, $2)
RETURNING number, balance`

	var created domain.Account
	if err := r.db.QueryRowContext(ctx, query, account.Number, account.Balance).
		Scan(&created.Number, &created.Balance); err != nil {
		if isUniqueViolation(err) {
			return domain.Account{}, domain.ErrDuplicateAccount
		}
		logger.Error("account repository create failed", err, logger.Fields{
			"number": account.Number,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	return created, nil
}

func (r *AccountRepository) GetByNumber(ctx context.Context, number int64) (domain.Account, error) {
	const query = `SELECT number, balance FROM accounts WHERE number = $1`

	var account domain.Account
	if err := r.db.QueryRowContext(ctx, query, number).
		Scan(&account.Number, &account.Balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, &domain.AccountNotFoundError{Number: number}
		}
		logger.Error("account repository get failed", err, logger.Fields{
			"number": number,
		})
		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) List(ctx context.Context, page, pageSize int) ([]domain.Account, int64, error) {
	const query = `
SELECT number, balance
FROM accounts
ORDER BY number ASC
LIMIT $1 OFFSET $2`

	offset := (page - 1) * pageSize
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0, pageSize)
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(&account.Number, &account.Balance); err != nil {
			return nil, 0, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}

	return accounts, total, nil
}

func (r *AccountRepository) Delete(ctx context.Context, number int64) (domain.Account, error) {
	const query = `
DELETE FROM accounts
WHERE number = $1
RETURNING number, balance`

	var deleted domain.Account
	if err := r.db.QueryRowContext(ctx, query, number).
		Scan(&deleted.Number, &deleted.Balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, &domain.AccountNotFoundError{Number: number}
		}
		logger.Error("account repository delete failed", err, logger.Fields{
			"number": number,
		})
		return domain.Account{}, fmt.Errorf("delete account: %w", err)
	}

	return deleted, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}
