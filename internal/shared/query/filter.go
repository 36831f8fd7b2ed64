// Package query holds paging and sorting primitives shared by list queries.
package query

import "strings"

type PageFilter struct {
	Page     int
	PageSize int
}

func (f PageFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

func (f PageFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 1000 {
		return 1000
	}
	return f.PageSize
}

type SortFilter struct {
	SortBy    string
	SortOrder string
}

func (f SortFilter) IsDescending() bool {
	return strings.EqualFold(f.SortOrder, "desc")
}

// OrderClause maps SortBy through columns, an allow-list from API field
// names to column names. Unknown fields yield fallback.
func (f SortFilter) OrderClause(columns map[string]string, fallback string) string {
	column, ok := columns[f.SortBy]
	if !ok {
		return fallback
	}
	order := "ASC"
	if f.IsDescending() {
		order = "DESC"
	}
	return column + " " + order
}

type BaseFilter struct {
	PageFilter
	SortFilter
}

type FilterOption func(*BaseFilter)

func WithPage(page, pageSize int) FilterOption {
	return func(f *BaseFilter) {
		f.Page = page
		f.PageSize = pageSize
	}
}

func WithSort(sortBy, sortOrder string) FilterOption {
	return func(f *BaseFilter) {
		f.SortBy = sortBy
		f.SortOrder = sortOrder
	}
}

func NewBaseFilter(opts ...FilterOption) BaseFilter {
	f := BaseFilter{
		PageFilter: PageFilter{Page: 1, PageSize: 20},
		SortFilter: SortFilter{SortBy: "createdAt", SortOrder: "DESC"},
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}
