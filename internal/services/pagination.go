package services

import "math"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Pagination is a 1-based page request
type Pagination struct {
	Page     int
	PageSize int
}

// NormalizePagination replaces non-positive values with the defaults.
func NormalizePagination(page, pageSize int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

// Skip is the number of records before this page, saturating at math.MaxInt64.
func (p Pagination) Skip() int64 {
	before, size := int64(p.Page-1), int64(p.PageSize)
	if before <= 0 || size <= 0 {
		return 0
	}
	if before > math.MaxInt64/size {
		return math.MaxInt64
	}
	return before * size
}

// TotalPages is ceil(total / pageSize); zero records give zero pages.
func TotalPages(total int64, pageSize int) int {
	if total <= 0 || pageSize < 1 {
		return 0
	}
	size := int64(pageSize)
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return int(pages)
}
