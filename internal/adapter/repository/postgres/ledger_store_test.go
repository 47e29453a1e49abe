package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renancpin/concurrent-transactions/internal/domain"
)

func TestClassifyScopeError(t *testing.T) {
	serialization := &pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"}
	err := classifyScopeError(serialization)
	require.ErrorIs(t, err, domain.ErrSerializationConflict)

	deadlock := &pq.Error{Code: "40P01", Message: "deadlock detected"}
	err = classifyScopeError(deadlock)
	require.ErrorIs(t, err, domain.ErrSerializationConflict)

	// Wrapped driver errors still classify.
	err = classifyScopeError(fmt.Errorf("commit ledger scope: %w", serialization))
	require.ErrorIs(t, err, domain.ErrSerializationConflict)
}

func TestClassifyScopeErrorPassthrough(t *testing.T) {
	unique := &pq.Error{Code: "23505", Message: "duplicate key value"}
	assert.Equal(t, error(unique), classifyScopeError(unique))

	insufficient := &domain.InsufficientFundsError{Number: 123}
	assert.Equal(t, error(insufficient), classifyScopeError(insufficient))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, classifyScopeError(plain))
}

func TestBuildTransactionFilterEmpty(t *testing.T) {
	where, args := buildTransactionFilter(domain.TransactionFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildTransactionFilter(t *testing.T) {
	source := int64(123)
	destination := int64(456)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	where, args := buildTransactionFilter(domain.TransactionFilter{
		Kinds:              []domain.TransactionKind{domain.TransactionKindDeposit, domain.TransactionKindTransfer},
		SourceAccount:      &source,
		DestinationAccount: &destination,
		StartDate:          &start,
		EndDate:            &end,
	})

	assert.Equal(t,
		"WHERE kind = ANY($1) AND source_account = $2 AND destination_account = $3 AND created_at >= $4 AND created_at <= $5",
		where,
	)
	require.Len(t, args, 5)
	assert.Equal(t, source, args[1])
	assert.Equal(t, destination, args[2])
	assert.Equal(t, start, args[3])
	assert.Equal(t, end, args[4])
}

func TestBuildTransactionFilterPlaceholderNumbering(t *testing.T) {
	source := int64(123)
	where, args := buildTransactionFilter(domain.TransactionFilter{SourceAccount: &source})

	assert.Equal(t, "WHERE source_account = $1", where)
	require.Len(t, args, 1)
}
