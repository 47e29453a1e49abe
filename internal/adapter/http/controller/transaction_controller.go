package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/renancpin/concurrent-transactions/internal/adapter/http/models"
	"github.com/renancpin/concurrent-transactions/internal/commons"
	"github.com/renancpin/concurrent-transactions/internal/domain"
	"github.com/renancpin/concurrent-transactions/internal/logger"
)

type LedgerService interface {
	Execute(ctx context.Context, req models.CreateTransactionRequest) (commons.Response[models.TransactionResponse], error)
	FindTransaction(ctx context.Context, id int64) (commons.Response[models.TransactionResponse], error)
	ListTransactions(ctx context.Context, filter domain.TransactionFilter, page, pageSize int) (commons.PaginatedResponse[models.TransactionResponse], error)
}

type TransactionController struct {
	service LedgerService
}

func NewTransactionController(service LedgerService) *TransactionController {
	return &TransactionController{service: service}
}

func (c *TransactionController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/transactions", c.collection)
	mux.HandleFunc("/transactions/", c.item)
}

func (c *TransactionController) collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		c.create(w, r)
	case http.MethodGet:
		c.list(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TransactionResponse]("method not allowed"))
	}
}

func (c *TransactionController) create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	response, err := c.service.Execute(r.Context(), req)
	if err != nil {
		status := statusFromError(err)
		logError(r, err, logger.Fields{"message": response.Message})
		writeJSON(w, status, response)
		logResponse(r, status, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, start)
}

func (c *TransactionController) list(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	filter, err := parseTransactionFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse]("invalid query", err.Error()))
		return
	}

	page, pageSize := parsePagination(r)
	response, err := c.service.ListTransactions(r.Context(), filter, page, pageSize)
	if err != nil {
		status := statusFromError(err)
		logError(r, err, nil)
		writeJSON(w, status, commons.ErrorResponse[models.TransactionResponse]("failed to list transactions"))
		logResponse(r, status, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, start)
}

func (c *TransactionController) item(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TransactionResponse]("method not allowed"))
		return
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/transactions/"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse]("invalid transaction id"))
		return
	}

	response, err := c.service.FindTransaction(r.Context(), id)
	if err != nil {
		status := statusFromError(err)
		logError(r, err, nil)
		writeJSON(w, status, response)
		logResponse(r, status, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, start)
}

// parseTransactionFilter reads the listing filters: kind accepts a
// comma-separated set, account references are integers, and the date
// range is inclusive (RFC 3339 or plain dates).
func parseTransactionFilter(r *http.Request) (domain.TransactionFilter, error) {
	var filter domain.TransactionFilter
	query := r.URL.Query()

	if raw := strings.TrimSpace(query.Get("kind")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			kind := domain.TransactionKind(strings.ToUpper(strings.TrimSpace(part)))
			if !kind.Valid() {
				return domain.TransactionFilter{}, fmt.Errorf("invalid kind %q", part)
			}
			filter.Kinds = append(filter.Kinds, kind)
		}
	}

	var err error
	if filter.SourceAccount, err = parseOptionalInt(query.Get("sourceAccount"), "sourceAccount"); err != nil {
		return domain.TransactionFilter{}, err
	}
	if filter.DestinationAccount, err = parseOptionalInt(query.Get("destinationAccount"), "destinationAccount"); err != nil {
		return domain.TransactionFilter{}, err
	}
	if filter.StartDate, err = parseOptionalDate(query.Get("startDate"), "startDate"); err != nil {
		return domain.TransactionFilter{}, err
	}
	if filter.EndDate, err = parseOptionalDate(query.Get("endDate"), "endDate"); err != nil {
		return domain.TransactionFilter{}, err
	}

	return filter, nil
}

func parseOptionalInt(raw, name string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &value, nil
}

func parseOptionalDate(raw, name string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if value, err := time.Parse(layout, raw); err == nil {
			return &value, nil
		}
	}
	return nil, fmt.Errorf("invalid %s %q", name, raw)
}
