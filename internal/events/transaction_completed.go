package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/renancpin/concurrent-transactions/internal/domain"
)

// TransactionCompleted is emitted after a movement commits. Consumers
// must treat it as at-most-once: a publish failure is logged and never
// rolls back the movement.
type TransactionCompleted struct {
	EventID            string          `json:"eventId"`
	TransactionID      int64           `json:"transactionId"`
	Kind               string          `json:"kind"`
	SourceAccount      int64           `json:"sourceAccount"`
	DestinationAccount *int64          `json:"destinationAccount,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	OccurredAt         time.Time       `json:"occurredAt"`
}

func NewTransactionCompleted(transaction domain.Transaction) TransactionCompleted {
	return TransactionCompleted{
		EventID:            uuid.NewString(),
		TransactionID:      transaction.ID,
		Kind:               string(transaction.Kind),
		SourceAccount:      transaction.SourceAccount,
		DestinationAccount: transaction.DestinationAccount,
		Amount:             transaction.Amount,
		OccurredAt:         transaction.Timestamp,
	}
}
