package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/renancpin/concurrent-transactions/internal/domain"
)

type CreateTransactionRequest struct {
	Kind               string          `json:"kind"`
	SourceAccount      *int64          `json:"sourceAccount,omitempty"`
	DestinationAccount *int64          `json:"destinationAccount,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
}

func (r CreateTransactionRequest) Validate() error {
	var errs []string

	kind := domain.TransactionKind(strings.ToUpper(strings.TrimSpace(r.Kind)))
	if !kind.Valid() {
		errs = append(errs, "kind must be one of DEPOSIT, WITHDRAWAL, TRANSFER")
	}

	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}
	// Compare against the truncated value so trailing zeros ("1.100")
	// stay valid; only real sub-cent precision is rejected.
	if !r.Amount.Equal(r.Amount.Truncate(2)) {
		errs = append(errs, "amount cannot have more than 2 decimal places")
	}

	if kind == domain.TransactionKindTransfer {
		if r.SourceAccount == nil || r.DestinationAccount == nil {
			errs = append(errs, "transfer requires both sourceAccount and destinationAccount")
		} else if *r.SourceAccount == *r.DestinationAccount {
			errs = append(errs, "sourceAccount and destinationAccount cannot be the same")
		}
	} else if kind.Valid() {
		if r.SourceAccount == nil {
			errs = append(errs, fmt.Sprintf("%s requires sourceAccount", strings.ToLower(string(kind))))
		}
		if r.DestinationAccount != nil {
			errs = append(errs, fmt.Sprintf("%s takes exactly one account reference", strings.ToLower(string(kind))))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, strings.Join(errs, "; "))
	}

	return nil
}

// NormalizedKind returns the request kind in canonical form. Only valid
// after Validate has passed.
func (r CreateTransactionRequest) NormalizedKind() domain.TransactionKind {
	return domain.TransactionKind(strings.ToUpper(strings.TrimSpace(r.Kind)))
}

type TransactionResponse struct {
	ID                 int64  `json:"id"`
	Kind               string `json:"kind"`
	SourceAccount      int64  `json:"sourceAccount"`
	DestinationAccount *int64 `json:"destinationAccount,omitempty"`
	Amount             string `json:"amount"`
	Timestamp          string `json:"timestamp"`
}

func NewTransactionResponse(transaction domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                 transaction.ID,
		Kind:               string(transaction.Kind),
		SourceAccount:      transaction.SourceAccount,
		DestinationAccount: transaction.DestinationAccount,
		Amount:             transaction.Amount.StringFixed(2),
		Timestamp:          transaction.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}
