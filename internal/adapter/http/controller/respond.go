package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/renancpin/concurrent-transactions/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusFromError maps an error to an HTTP status by its kind, never by
// its message. Serialization conflicts that survived the engine's retry
// budget come back as a retryable 409.
func statusFromError(err error) int {
	var insufficient *domain.InsufficientFundsError

	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.As(err, &insufficient):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateAccount):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSerializationConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
