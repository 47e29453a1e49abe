package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renancpin/concurrent-transactions/internal/adapter/http/models"
	"github.com/renancpin/concurrent-transactions/internal/adapter/repository/memory"
	"github.com/renancpin/concurrent-transactions/internal/domain"
)

func decimalPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func TestCreateAccount(t *testing.T) {
	service := NewAccountService(memory.NewStore())

	response, err := service.CreateAccount(context.Background(), models.CreateAccountRequest{
		Number:  123,
		Balance: decimalPtr("100.50"),
	})
	require.NoError(t, err)
	require.NotNil(t, response.Data)

	assert.True(t, response.Success)
	assert.Equal(t, int64(123), response.Data.Number)
	assert.Equal(t, "100.50", response.Data.Balance)
}

func TestCreateAccountDefaultsToZeroBalance(t *testing.T) {
	service := NewAccountService(memory.NewStore())

	response, err := service.CreateAccount(context.Background(), models.CreateAccountRequest{Number: 123})
	require.NoError(t, err)
	require.NotNil(t, response.Data)
	assert.Equal(t, "0.00", response.Data.Balance)
}

func TestCreateAccountAcceptsTrailingZeroBalance(t *testing.T) {
	service := NewAccountService(memory.NewStore())

	response, err := service.CreateAccount(context.Background(), models.CreateAccountRequest{
		Number:  123,
		Balance: decimalPtr("2.500"),
	})
	require.NoError(t, err)
	require.NotNil(t, response.Data)
	assert.Equal(t, "2.50", response.Data.Balance)
}

func TestCreateAccountValidation(t *testing.T) {
	service := NewAccountService(memory.NewStore())

	cases := []struct {
		name string
		req  models.CreateAccountRequest
	}{
		{name: "non-positive number", req: models.CreateAccountRequest{Number: 0}},
		{name: "negative balance", req: models.CreateAccountRequest{Number: 123, Balance: decimalPtr("-1")}},
		{name: "too many decimal places", req: models.CreateAccountRequest{Number: 123, Balance: decimalPtr("1.001")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CreateAccount(context.Background(), tc.req)
			require.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
}

func TestCreateAccountDuplicate(t *testing.T) {
	service := NewAccountService(memory.NewStore())

	_, err := service.CreateAccount(context.Background(), models.CreateAccountRequest{Number: 123})
	require.NoError(t, err)

	response, err := service.CreateAccount(context.Background(), models.CreateAccountRequest{Number: 123})
	require.ErrorIs(t, err, domain.ErrDuplicateAccount)
	assert.False(t, response.Success)
}

func TestGetAccount(t *testing.T) {
	store := memory.NewStore()
	service := NewAccountService(store)
	createAccount(t, store, 123, "42.10")

	response, err := service.GetAccount(context.Background(), 123)
	require.NoError(t, err)
	require.NotNil(t, response.Data)
	assert.Equal(t, "42.10", response.Data.Balance)

	_, err = service.GetAccount(context.Background(), 999)
	require.ErrorIs(t, err, domain.ErrRecordNotFound)

	var notFound *domain.AccountNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(999), notFound.Number)
}

func TestDeleteAccount(t *testing.T) {
	store := memory.NewStore()
	service := NewAccountService(store)
	createAccount(t, store, 123, "10")

	response, err := service.DeleteAccount(context.Background(), 123)
	require.NoError(t, err)
	require.NotNil(t, response.Data)
	assert.Equal(t, int64(123), response.Data.Number)

	_, err = service.GetAccount(context.Background(), 123)
	require.ErrorIs(t, err, domain.ErrRecordNotFound)

	_, err = service.DeleteAccount(context.Background(), 123)
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestListAccountsPagination(t *testing.T) {
	store := memory.NewStore()
	service := NewAccountService(store)
	for i := int64(1); i <= 7; i++ {
		createAccount(t, store, i, "0")
	}

	page, err := service.ListAccounts(context.Background(), 2, 3)
	require.NoError(t, err)

	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 3, page.PageSize)
	assert.Equal(t, int64(7), page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 3)
	assert.Equal(t, int64(4), page.Items[0].Number)

	// Out-of-bounds pages and coerced parameters still answer.
	empty, err := service.ListAccounts(context.Background(), 10, 3)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)

	coerced, err := service.ListAccounts(context.Background(), -1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, coerced.CurrentPage)
	assert.Equal(t, DefaultAccountPageSize, coerced.PageSize)
	require.Len(t, coerced.Items, 7)
}
