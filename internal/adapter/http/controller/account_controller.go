package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/renancpin/concurrent-transactions/internal/adapter/http/models"
	"github.com/renancpin/concurrent-transactions/internal/commons"
)

type AccountService interface {
	CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error)
	GetAccount(ctx context.Context, number int64) (commons.Response[models.AccountResponse], error)
	ListAccounts(ctx context.Context, page, pageSize int) (commons.PaginatedResponse[models.AccountResponse], error)
	DeleteAccount(ctx context.Context, number int64) (commons.Response[models.AccountResponse], error)
}

type AccountController struct {
	service AccountService
}

func NewAccountController(service AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/accounts", c.collection)
	mux.HandleFunc("/accounts/", c.item)
}

func (c *AccountController) collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		c.create(w, r)
	case http.MethodGet:
		c.list(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.AccountResponse]("method not allowed"))
	}
}

func (c *AccountController) create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	response, err := c.service.CreateAccount(r.Context(), req)
	if err != nil {
		status := statusFromError(err)
		logError(r, err, nil)
		writeJSON(w, status, response)
		logResponse(r, status, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, start)
}

func (c *AccountController) list(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	page, pageSize := parsePagination(r)
	response, err := c.service.ListAccounts(r.Context(), page, pageSize)
	if err != nil {
		status := statusFromError(err)
		logError(r, err, nil)
		writeJSON(w, status, commons.ErrorResponse[models.AccountResponse]("failed to list accounts"))
		logResponse(r, status, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, start)
}

func (c *AccountController) item(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	number, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/accounts/"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid account number"))
		return
	}

	var response commons.Response[models.AccountResponse]
	switch r.Method {
	case http.MethodGet:
		response, err = c.service.GetAccount(r.Context(), number)
	case http.MethodDelete:
		response, err = c.service.DeleteAccount(r.Context(), number)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.AccountResponse]("method not allowed"))
		return
	}

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

func parsePagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	return page, pageSize
}
