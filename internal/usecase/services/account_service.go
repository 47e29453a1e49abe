package services

import (
	"context"
	"errors"

	"github.com/renancpin/concurrent-transactions/internal/adapter/http/models"
	"github.com/renancpin/concurrent-transactions/internal/commons"
	"github.com/renancpin/concurrent-transactions/internal/domain"
	"github.com/renancpin/concurrent-transactions/internal/logger"
)

const DefaultAccountPageSize = 30

type AccountService struct {
	accountRepo domain.AccountRepository
}

func NewAccountService(accountRepo domain.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

func (s *AccountService) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service create account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service create account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	created, err := s.accountRepo.Create(ctx, domain.Account{
		Number:  req.Number,
		Balance: req.InitialBalance(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateAccount) {
			return commons.ErrorResponse[models.AccountResponse]("account already exists", err.Error()), err
		}
		logger.Error("account service create account failed", err, logger.Fields{
			"number": req.Number,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	response := models.NewAccountResponse(created)
	logger.Info("account service create account success", logger.Fields{
		"number":  response.Number,
		"balance": response.Balance,
	})

	return commons.SuccessResponse("account created successfully", response), nil
}

func (s *AccountService) GetAccount(ctx context.Context, number int64) (commons.Response[models.AccountResponse], error) {
	account, err := s.accountRepo.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("account not found"), err
		}
		logger.Error("account service get account failed", err, logger.Fields{
			"number": number,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to get account", "Unable to fetch account right now"), err
	}

	return commons.SuccessResponse("account found", models.NewAccountResponse(account)), nil
}

func (s *AccountService) ListAccounts(ctx context.Context, page, pageSize int) (commons.PaginatedResponse[models.AccountResponse], error) {
	page, pageSize = commons.NormalizePage(page, pageSize, DefaultAccountPageSize)

	accounts, total, err := s.accountRepo.List(ctx, page, pageSize)
	if err != nil {
		logger.Error("account service list accounts failed", err, nil)
		return commons.PaginatedResponse[models.AccountResponse]{}, err
	}

	items := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		items = append(items, models.NewAccountResponse(account))
	}

	return commons.NewPaginatedResponse(items, page, pageSize, total), nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, number int64) (commons.Response[models.AccountResponse], error) {
	deleted, err := s.accountRepo.Delete(ctx, number)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("account not found"), err
		}
		logger.Error("account service delete account failed", err, logger.Fields{
			"number": number,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to delete account", "Unable to delete account right now"), err
	}

	logger.Info("account service delete account success", logger.Fields{
		"number": number,
	})

	return commons.SuccessResponse("account deleted successfully", models.NewAccountResponse(deleted)), nil
}
