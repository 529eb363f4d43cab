package models

import "math"

// Pagination carries normalized list parameters. Page is 1-indexed.
type Pagination struct {
	Page  int
	Limit int
}

// Normalize clamps out-of-range values to sane defaults.
func (p Pagination) Normalize(defaultLimit int) Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageResult is a page of items plus the counters the API reports.
type PageResult[T any] struct {
	Items       []T
	TotalItems  int64
	TotalPages  int
	CurrentPage int
}

// NewPageResult derives the page counters from a total count and the
// pagination that produced items.
func NewPageResult[T any](items []T, total int64, p Pagination) PageResult[T] {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	return PageResult[T]{
		Items:       items,
		TotalItems:  total,
		TotalPages:  totalPages,
		CurrentPage: p.Page,
	}
}
