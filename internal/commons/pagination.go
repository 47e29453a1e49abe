package commons

// PaginatedResponse is the envelope rendered by every listing endpoint.
// Pages are 1-indexed and TotalPages is never below 1, even for an empty
// result set.
type PaginatedResponse[T any] struct {
	Items       []T   `json:"items"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
}

func NewPaginatedResponse[T any](items []T, page, pageSize int, totalItems int64) PaginatedResponse[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := 1
	if pageSize > 0 {
		totalPages = int((totalItems + int64(pageSize) - 1) / int64(pageSize))
		if totalPages < 1 {
			totalPages = 1
		}
	}

	return PaginatedResponse[T]{
		Items:       items,
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    pageSize,
		TotalItems:  totalItems,
	}
}

// NormalizePage coerces out-of-range pagination parameters to their
// defaults instead of rejecting them.
func NormalizePage(page, pageSize, defaultPageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	return page, pageSize
}
