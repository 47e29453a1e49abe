package commons

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginatedResponse(t *testing.T) {
	page := NewPaginatedResponse([]int{1, 2, 3}, 2, 3, 7)

	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 3, page.PageSize)
	assert.Equal(t, int64(7), page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
}

func TestNewPaginatedResponseEmpty(t *testing.T) {
	page := NewPaginatedResponse[int](nil, 1, 30, 0)

	// An empty listing still reports one page and marshals items as [].
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.TotalPages)
}

func TestNewPaginatedResponseExactFit(t *testing.T) {
	page := NewPaginatedResponse([]int{1, 2, 3}, 1, 3, 6)
	assert.Equal(t, 2, page.TotalPages)
}

func TestNormalizePage(t *testing.T) {
	page, pageSize := NormalizePage(0, 0, 30)
	assert.Equal(t, 1, page)
	assert.Equal(t, 30, pageSize)

	page, pageSize = NormalizePage(-5, -1, 30)
	assert.Equal(t, 1, page)
	assert.Equal(t, 30, pageSize)

	page, pageSize = NormalizePage(4, 10, 30)
	assert.Equal(t, 4, page)
	assert.Equal(t, 10, pageSize)
}
