package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/renancpin/concurrent-transactions/internal/adapter/http/models"
	"github.com/renancpin/concurrent-transactions/internal/commons"
	"github.com/renancpin/concurrent-transactions/internal/domain"
	"github.com/renancpin/concurrent-transactions/internal/events"
	"github.com/renancpin/concurrent-transactions/internal/logger"
)

// maxExecuteAttempts bounds the serialization-conflict retry loop. Only
// a conflict signal from the store triggers a retry; business rejections
// and infrastructure failures surface immediately.
const maxExecuteAttempts = 3

const DefaultTransactionPageSize = 100

type EventPublisher interface {
	Publish(ctx context.Context, event events.TransactionCompleted) error
}

// LedgerService executes money movements with all-or-nothing semantics.
// Each Execute call runs its own serializable scope against the store;
// the service holds no state between calls, so it is safe for concurrent
// use by independent callers.
type LedgerService struct {
	store           domain.LedgerStore
	transactionRepo domain.TransactionRepository
	publisher       EventPublisher
}

// NewLedgerService wires the engine. publisher may be nil, which
// disables transaction-completed events.
func NewLedgerService(store domain.LedgerStore, transactionRepo domain.TransactionRepository, publisher EventPublisher) *LedgerService {
	return &LedgerService{
		store:           store,
		transactionRepo: transactionRepo,
		publisher:       publisher,
	}
}

type balanceStep struct {
	number int64
	delta  decimal.Decimal
}

func (s *LedgerService) Execute(ctx context.Context, req models.CreateTransactionRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("ledger service execute request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("ledger service execute validation failed", err, nil)
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	kind := req.NormalizedKind()

	// The acting account's delta comes first so the post-adjustment
	// non-negativity check always inspects it.
	var steps []balanceStep
	switch kind {
	case domain.TransactionKindDeposit:
		steps = []balanceStep{{number: *req.SourceAccount, delta: req.Amount}}
	case domain.TransactionKindWithdrawal:
		steps = []balanceStep{{number: *req.SourceAccount, delta: req.Amount.Neg()}}
	case domain.TransactionKindTransfer:
		steps = []balanceStep{
			{number: *req.SourceAccount, delta: req.Amount.Neg()},
			{number: *req.DestinationAccount, delta: req.Amount},
		}
	}

	var (
		created domain.Transaction
		err     error
	)
	for attempt := 1; attempt <= maxExecuteAttempts; attempt++ {
		err = s.store.ExecuteSerializable(ctx, func(scope domain.LedgerScope) error {
			acting, scopeErr := s.applyMovement(ctx, scope, steps)
			if scopeErr != nil {
				return scopeErr
			}

			if acting.Balance.IsNegative() {
				return &domain.InsufficientFundsError{Number: acting.Number, Balance: acting.Balance}
			}

			inserted, scopeErr := scope.InsertTransaction(ctx, domain.Transaction{
				Kind:               kind,
				SourceAccount:      *req.SourceAccount,
				DestinationAccount: req.DestinationAccount,
				Amount:             req.Amount,
			})
			if scopeErr != nil {
				return scopeErr
			}

			created = inserted
			return nil
		})
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrSerializationConflict) || ctx.Err() != nil {
			break
		}
		if attempt < maxExecuteAttempts {
			logger.Info("ledger service retrying after serialization conflict", logger.Fields{
				"attempt": attempt,
				"kind":    kind,
			})
		}
	}
	if err != nil {
		logger.Error("ledger service execute failed", err, logger.Fields{
			"kind":               kind,
			"sourceAccount":      req.SourceAccount,
			"destinationAccount": req.DestinationAccount,
			"amount":             req.Amount,
		})
		return executeErrorResponse(err), err
	}

	s.publishCompleted(ctx, created)

	response := models.NewTransactionResponse(created)
	logger.Info("ledger service execute success", logger.Fields{
		"transactionId": response.ID,
		"kind":          response.Kind,
		"amount":        response.Amount,
	})

	return commons.SuccessResponse("transaction created successfully", response), nil
}

// applyMovement stages every balance delta and returns the acting
// account's post-adjustment state.
func (s *LedgerService) applyMovement(ctx context.Context, scope domain.LedgerScope, steps []balanceStep) (domain.Account, error) {
	var acting domain.Account
	for i, step := range steps {
		account, err := scope.AdjustBalance(ctx, step.number, step.delta)
		if err != nil {
			return domain.Account{}, err
		}
		if i == 0 {
			acting = account
		}
	}
	return acting, nil
}

func (s *LedgerService) publishCompleted(ctx context.Context, transaction domain.Transaction) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.Publish(ctx, events.NewTransactionCompleted(transaction)); err != nil {
		logger.Error("ledger service publish transaction completed failed", err, logger.Fields{
			"transactionId": transaction.ID,
		})
	}
}

func (s *LedgerService) FindTransaction(ctx context.Context, id int64) (commons.Response[models.TransactionResponse], error) {
	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionResponse]("transaction not found"), err
		}
		logger.Error("ledger service find transaction failed", err, logger.Fields{
			"transactionId": id,
		})
		return commons.ErrorResponse[models.TransactionResponse]("failed to find transaction", "Unable to fetch transaction right now"), err
	}

	return commons.SuccessResponse("transaction found", models.NewTransactionResponse(transaction)), nil
}

func (s *LedgerService) ListTransactions(ctx context.Context, filter domain.TransactionFilter, page, pageSize int) (commons.PaginatedResponse[models.TransactionResponse], error) {
	page, pageSize = commons.NormalizePage(page, pageSize, DefaultTransactionPageSize)

	transactions, total, err := s.transactionRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		logger.Error("ledger service list transactions failed", err, nil)
		return commons.PaginatedResponse[models.TransactionResponse]{}, err
	}

	items := make([]models.TransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		items = append(items, models.NewTransactionResponse(transaction))
	}

	return commons.NewPaginatedResponse(items, page, pageSize, total), nil
}

func executeErrorResponse(err error) commons.Response[models.TransactionResponse] {
	var insufficient *domain.InsufficientFundsError
	var notFound *domain.AccountNotFoundError

	switch {
	case errors.As(err, &insufficient):
		return commons.ErrorResponse[models.TransactionResponse]("insufficient funds", insufficient.Error())
	case errors.As(err, &notFound):
		return commons.ErrorResponse[models.TransactionResponse]("account not found", notFound.Error())
	case errors.Is(err, domain.ErrSerializationConflict):
		return commons.ErrorResponse[models.TransactionResponse]("transaction conflict", "Could not complete the transaction. Try again.")
	default:
		return commons.ErrorResponse[models.TransactionResponse]("failed to execute transaction", "Unable to process transaction right now")
	}
}
