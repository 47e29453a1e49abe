// Package memory holds an in-memory ledger store used by tests and local
// runs without a database. A single mutex serializes every atomic scope,
// which trivially satisfies the serializable-isolation contract.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/renancpin/concurrent-transactions/internal/domain"
)

type Store struct {
	mu           sync.Mutex
	accounts     map[int64]domain.Account
	transactions []domain.Transaction
	nextID       int64
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[int64]domain.Account),
	}
}

// ExecuteSerializable runs fn while holding the store lock. Adjustments
// are staged on a scope-local view and applied only when fn returns nil,
// so a failing scope leaves no partial state behind.
func (s *Store) ExecuteSerializable(ctx context.Context, fn func(scope domain.LedgerScope) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	scope := &memoryScope{
		store:  s,
		staged: make(map[int64]domain.Account),
	}

	if err := fn(scope); err != nil {
		return err
	}

	for number, account := range scope.staged {
		s.accounts[number] = account
	}
	s.transactions = append(s.transactions, scope.inserted...)
	s.nextID += int64(len(scope.inserted))

	return nil
}

type memoryScope struct {
	store    *Store
	staged   map[int64]domain.Account
	inserted []domain.Transaction
}

func (s *memoryScope) AdjustBalance(ctx context.Context, number int64, delta decimal.Decimal) (domain.Account, error) {
	account, ok := s.staged[number]
	if !ok {
		account, ok = s.store.accounts[number]
		if !ok {
			return domain.Account{}, &domain.AccountNotFoundError{Number: number}
		}
	}

	account.Balance = account.Balance.Add(delta)
	s.staged[number] = account

	return account, nil
}

func (s *memoryScope) InsertTransaction(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	transaction.ID = s.store.nextID + int64(len(s.inserted)) + 1
	transaction.Timestamp = time.Now().UTC()
	s.inserted = append(s.inserted, transaction)

	return transaction, nil
}

func (s *Store) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.Number]; exists {
		return domain.Account{}, domain.ErrDuplicateAccount
	}

	s.accounts[account.Number] = account
	return account, nil
}

func (s *Store) GetByNumber(ctx context.Context, number int64) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[number]
	if !ok {
		return domain.Account{}, &domain.AccountNotFoundError{Number: number}
	}

	return account, nil
}

func (s *Store) List(ctx context.Context, page, pageSize int) ([]domain.Account, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]domain.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		all = append(all, account)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Number < all[j].Number })

	return paginate(all, page, pageSize), int64(len(all)), nil
}

func (s *Store) Delete(ctx context.Context, number int64) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[number]
	if !ok {
		return domain.Account{}, &domain.AccountNotFoundError{Number: number}
	}

	delete(s.accounts, number)
	return account, nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, transaction := range s.transactions {
		if transaction.ID == id {
			return transaction, nil
		}
	}

	return domain.Transaction{}, domain.ErrRecordNotFound
}

func (s *Store) ListTransactions(ctx context.Context, filter domain.TransactionFilter, page, pageSize int) ([]domain.Transaction, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := make([]domain.Transaction, 0, len(s.transactions))
	for _, transaction := range s.transactions {
		if matchesFilter(transaction, filter) {
			matches = append(matches, transaction)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Timestamp.Equal(matches[j].Timestamp) {
			return matches[i].ID > matches[j].ID
		}
		return matches[i].Timestamp.After(matches[j].Timestamp)
	})

	return paginate(matches, page, pageSize), int64(len(matches)), nil
}

func matchesFilter(transaction domain.Transaction, filter domain.TransactionFilter) bool {
	if len(filter.Kinds) > 0 {
		found := false
		for _, kind := range filter.Kinds {
			if transaction.Kind == kind {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.SourceAccount != nil && transaction.SourceAccount != *filter.SourceAccount {
		return false
	}
	if filter.DestinationAccount != nil {
		if transaction.DestinationAccount == nil || *transaction.DestinationAccount != *filter.DestinationAccount {
			return false
		}
	}
	if filter.StartDate != nil && transaction.Timestamp.Before(*filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && transaction.Timestamp.After(*filter.EndDate) {
		return false
	}
	return true
}

// TransactionRepository returns a view of the store satisfying
// domain.TransactionRepository. The Store itself cannot, because both
// repository interfaces declare a List method with different signatures.
func (s *Store) TransactionRepository() domain.TransactionRepository {
	return transactionRepository{store: s}
}

type transactionRepository struct {
	store *Store
}

func (r transactionRepository) GetByID(ctx context.Context, id int64) (domain.Transaction, error) {
	return r.store.GetByID(ctx, id)
}

func (r transactionRepository) List(ctx context.Context, filter domain.TransactionFilter, page, pageSize int) ([]domain.Transaction, int64, error) {
	return r.store.ListTransactions(ctx, filter, page, pageSize)
}

var (
	_ domain.LedgerStore       = (*Store)(nil)
	_ domain.AccountRepository = (*Store)(nil)
)

func paginate[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
