package dto

type Pagination[T any] struct {
	Items      []T `json:"items"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

// TotalPages rounds up; a zero page size yields zero pages.
func TotalPages(totalItems, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}
