// Package listview implements the admin tables: a fetched collection run
// through filter, sort and paginate, refreshed by a poller.
package listview

import (
	"sort"
	"strings"

	"smartride-portal/pkg/utils"
)

// PageSize is the number of rows per page in every table.
const PageSize = 8

// Spec describes one resource table.
type Spec[T any] struct {
	Resource string
	// ID identifies a row for busy tracking and actions.
	ID func(T) string
	// Columns maps a sortable column name to its display value.
	Columns map[string]func(T) string
	// SearchFields are column names matched by the free-text filter.
	SearchFields []string
	DefaultSort  string
	// FetchError is shown when the collection cannot be loaded.
	FetchError string
}

type Query struct {
	Search string `json:"search"`
	SortBy string `json:"sortBy"`
	Desc   bool   `json:"desc"`
	Page   int    `json:"page"`
}

type Page[T any] struct {
	Items      []T    `json:"items"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
	Total      int    `json:"total"`
	Search     string `json:"search"`
	SortBy     string `json:"sortBy"`
	Desc       bool   `json:"desc"`
}

// TotalPages is never less than one, even for an empty table.
func TotalPages(n int) int {
	return max(1, utils.CalculateTotalPages(int64(n), PageSize))
}

// ClampPage keeps page inside [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Filter keeps rows whose search fields contain the trimmed, lowercased query.
func (s Spec[T]) Filter(items []T, search string) []T {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return append([]T(nil), items...)
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range s.SearchFields {
			col, ok := s.Columns[field]
			if !ok {
				continue
			}
			if strings.Contains(strings.ToLower(col(item)), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// SortColumn resolves a requested column, falling back to the default.
func (s Spec[T]) SortColumn(name string) string {
	if _, ok := s.Columns[name]; ok {
		return name
	}
	return s.DefaultSort
}

// Sort orders items in place by the column's lowercased string value. Equal
// keys keep their fetched order.
func (s Spec[T]) Sort(items []T, column string, desc bool) {
	col, ok := s.Columns[column]
	if !ok {
		return
	}

	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = strings.ToLower(col(item))
	}

	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if desc {
			return keys[idx[a]] > keys[idx[b]]
		}
		return keys[idx[a]] < keys[idx[b]]
	})

	sorted := make([]T, len(items))
	for i, j := range idx {
		sorted[i] = items[j]
	}
	copy(items, sorted)
}

// Apply runs the whole pipeline: filter, sort, then slice out one page.
func (s Spec[T]) Apply(items []T, q Query) Page[T] {
	rows := s.Filter(items, q.Search)
	column := s.SortColumn(q.SortBy)
	s.Sort(rows, column, q.Desc)

	totalPages := TotalPages(len(rows))
	page := ClampPage(q.Page, totalPages)

	start := utils.CalculateOffset(page, PageSize)
	end := start + PageSize
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}

	return Page[T]{
		Items:      rows[start:end],
		Page:       page,
		TotalPages: totalPages,
		Total:      len(rows),
		Search:     q.Search,
		SortBy:     column,
		Desc:       q.Desc,
	}
}
