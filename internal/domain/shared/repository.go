package shared

import (
	"strings"
)

const (
	// DefaultLimit is the page size used when the caller does not pass one
	DefaultLimit = 100
	// MaxLimit is the largest page size a listing accepts
	MaxLimit = 1000
)

// Filter represents query filter options shared by every listing.
// Skip and Limit follow offset pagination; Filters carries per-entity
// equality filters keyed by column name.
type Filter struct {
	Skip     int
	Limit    int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Skip:    0,
		Limit:   DefaultLimit,
		Filters: make(map[string]interface{}),
	}
}

// NewFilter validates skip/limit and returns a filter ready for use
func NewFilter(skip, limit int) (Filter, error) {
	if skip < 0 {
		return Filter{}, NewDomainError("INVALID_INPUT", "skip must be greater than or equal to 0")
	}
	if limit < 1 || limit > MaxLimit {
		return Filter{}, NewDomainError("INVALID_INPUT", "limit must be between 1 and 1000")
	}
	f := DefaultFilter()
	f.Skip = skip
	f.Limit = limit
	return f, nil
}

// With sets an equality filter and returns the filter for chaining
func (f Filter) With(key string, value interface{}) Filter {
	if f.Filters == nil {
		f.Filters = make(map[string]interface{})
	}
	f.Filters[key] = value
	return f
}

// WithSearch sets the free text search term
func (f Filter) WithSearch(search string) Filter {
	f.Search = strings.TrimSpace(search)
	return f
}

// Get returns a filter value and whether it was set
func (f Filter) Get(key string) (interface{}, bool) {
	if f.Filters == nil {
		return nil, false
	}
	v, ok := f.Filters[key]
	return v, ok
}

// Page is the result of a listing: the requested window of items plus the
// number of records matching the filter before pagination.
type Page[T any] struct {
	Items []T
	Total int64
	Skip  int
	Limit int
}

// NewPage creates a new page result
func NewPage[T any](items []T, total int64, filter Filter) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items: items,
		Total: total,
		Skip:  filter.Skip,
		Limit: filter.Limit,
	}
}

// MapPage converts the items of a page, keeping the pagination metadata
func MapPage[T, R any](p Page[T], fn func(T) R) Page[R] {
	out := make([]R, 0, len(p.Items))
	for _, item := range p.Items {
		out = append(out, fn(item))
	}
	return Page[R]{Items: out, Total: p.Total, Skip: p.Skip, Limit: p.Limit}
}
