package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/renancpin/concurrent-transactions/internal/domain"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (domain.Transaction, error) {
	const query = `
SELECT id, kind, source_account, destination_account, amount, created_at
FROM transactions
WHERE id = $1`

	transaction, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transaction{}, domain.ErrRecordNotFound
		}
		return domain.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}

	return transaction, nil
}

func (r *TransactionRepository) List(ctx context.Context, filter domain.TransactionFilter, page, pageSize int) ([]domain.Transaction, int64, error) {
	where, args := buildTransactionFilter(filter)

	listQuery := fmt.Sprintf(`
SELECT id, kind, source_account, destination_account, amount, created_at
FROM transactions
%s
ORDER BY created_at DESC, id DESC
LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)

	offset := (page - 1) * pageSize
	rows, err := r.db.QueryContext(ctx, listQuery, append(args, pageSize, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0, pageSize)
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM transactions %s`, where)

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	return transactions, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var (
		transaction domain.Transaction
		destination sql.NullInt64
	)

	if err := row.Scan(
		&transaction.ID,
		&transaction.Kind,
		&transaction.SourceAccount,
		&destination,
		&transaction.Amount,
		&transaction.Timestamp,
	); err != nil {
		return domain.Transaction{}, err
	}

	if destination.Valid {
		value := destination.Int64
		transaction.DestinationAccount = &value
	}

	return transaction, nil
}

func buildTransactionFilter(filter domain.TransactionFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	next := func() int { return len(args) + 1 }

	if len(filter.Kinds) > 0 {
		kinds := make([]string, 0, len(filter.Kinds))
		for _, kind := range filter.Kinds {
			kinds = append(kinds, string(kind))
		}
		conditions = append(conditions, fmt.Sprintf("kind = ANY($%d)", next()))
		args = append(args, pq.Array(kinds))
	}
	if filter.SourceAccount != nil {
		conditions = append(conditions, fmt.Sprintf("source_account = $%d", next()))
		args = append(args, *filter.SourceAccount)
	}
	if filter.DestinationAccount != nil {
		conditions = append(conditions, fmt.Sprintf("destination_account = $%d", next()))
		args = append(args, *filter.DestinationAccount)
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", next()))
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", next()))
		args = append(args, *filter.EndDate)
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}
