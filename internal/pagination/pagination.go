// Package pagination slices ordered result sets into fixed-size pages.
package pagination

import (
	"errors"
	"strconv"
)

var ErrInvalidPageSize = errors.New("page size must be greater than zero")

// Page is one slice of an ordered sequence plus the data needed to render
// page navigation.
type Page[T any] struct {
	Items       []T  `json:"items"`
	PageNumber  int  `json:"page_number"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// Paginate returns page pageNumber (1-indexed) of items. Page numbers outside
// the valid range are clamped to the first or last page. An empty input
// yields a single empty page.
func Paginate[T any](items []T, pageSize, pageNumber int) (Page[T], error) {
	if pageSize <= 0 {
		return Page[T]{}, ErrInvalidPageSize
	}

	total := TotalPages(len(items), pageSize)
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageNumber > total {
		pageNumber = total
	}

	start := (pageNumber - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	pageItems := make([]T, end-start)
	copy(pageItems, items[start:end])

	return Page[T]{
		Items:       pageItems,
		PageNumber:  pageNumber,
		TotalPages:  total,
		TotalItems:  len(items),
		HasNext:     pageNumber < total,
		HasPrevious: pageNumber > 1,
	}, nil
}

// TotalPages is the number of pages count items fill. It is never below one.
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 || count == 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}

// ParsePageNumber reads a page query parameter. Anything that is not an
// integer selects the first page.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}
