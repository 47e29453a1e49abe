package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/renancpin/concurrent-transactions/internal/domain"
)

type CreateAccountRequest struct {
	Number  int64            `json:"number"`
	Balance *decimal.Decimal `json:"balance,omitempty"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if r.Number <= 0 {
		errs = append(errs, "number must be a positive integer")
	}

	if r.Balance != nil {
		if r.Balance.IsNegative() {
			errs = append(errs, "balance cannot be negative")
		}
		if !r.Balance.Equal(r.Balance.Truncate(2)) {
			errs = append(errs, "balance cannot have more than 2 decimal places")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, strings.Join(errs, "; "))
	}

	return nil
}

// InitialBalance is the requested opening balance, defaulting to zero
// when omitted.
func (r CreateAccountRequest) InitialBalance() decimal.Decimal {
	if r.Balance == nil {
		return decimal.Zero
	}
	return *r.Balance
}

type AccountResponse struct {
	Number  int64  `json:"number"`
	Balance string `json:"balance"`
}

func NewAccountResponse(account domain.Account) AccountResponse {
	return AccountResponse{
		Number:  account.Number,
		Balance: account.Balance.StringFixed(2),
	}
}
