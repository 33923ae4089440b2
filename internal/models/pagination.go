package models

// Page is one slice of a paginated listing.
type Page[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// NewPage never returns a nil Data slice so empty listings encode as [].
func NewPage[T any](data []T, total, page, pageSize int) *Page[T] {
	if data == nil {
		data = []T{}
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	return &Page[T]{Data: data, Total: total, Page: page, PageSize: pageSize, TotalPages: totalPages}
}
