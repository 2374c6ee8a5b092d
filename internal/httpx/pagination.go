package httpx

import (
	"net/http"
	"strconv"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// PageParams carries the page/pageSize query parameters of list endpoints.
type PageParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ParsePageParams reads page and pageSize from the query string, falling back
// to defaults on absent or unparseable values.
func ParsePageParams(r *http.Request) PageParams {
	params := PageParams{Page: defaultPage, PageSize: defaultPageSize}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v >= 1 {
		params.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("pageSize")); err == nil && v >= 1 {
		params.PageSize = min(v, maxPageSize)
	}
	return params
}

// Pagination describes one page of a list response.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalCount  int `json:"totalCount"`
	TotalPages  int `json:"totalPages"`
}

// NewPagination computes the pagination block for a page and total row count.
func NewPagination(params PageParams, totalCount int) Pagination {
	totalPages := (totalCount + params.PageSize - 1) / params.PageSize
	return Pagination{
		CurrentPage: params.Page,
		PageSize:    params.PageSize,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
	}
}

// Paged is the data shape of paginated list endpoints.
type Paged struct {
	Pagination Pagination `json:"pagination"`
	Data       any        `json:"data"`
}
