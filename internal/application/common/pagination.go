// Package common holds request and response shapes shared by every
// application service: offset pagination and not-found translation.
package common

import (
	"errors"

	"github.com/erp/erpapp/internal/domain/shared"
)

// PageQuery is the skip/limit window every list endpoint accepts
type PageQuery struct {
	Skip     *int   `form:"skip"`
	Limit    *int   `form:"limit"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFilter validates the window and returns a domain filter.
// Missing values fall back to skip 0 and limit 100.
func (q PageQuery) ToFilter() (shared.Filter, error) {
	skip, limit := 0, shared.DefaultLimit
	if q.Skip != nil {
		skip = *q.Skip
	}
	if q.Limit != nil {
		limit = *q.Limit
	}
	filter, err := shared.NewFilter(skip, limit)
	if err != nil {
		return shared.Filter{}, err
	}
	filter.OrderBy = q.OrderBy
	filter.OrderDir = q.OrderDir
	return filter, nil
}

// ListResponse is the JSON body of every list endpoint
type ListResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
}

// NewListResponse converts a domain page with conv
func NewListResponse[D any, R any](page shared.Page[D], conv func(*D) R) ListResponse[R] {
	items := make([]R, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, conv(&page.Items[i]))
	}
	return ListResponse[R]{
		Items: items,
		Total: page.Total,
		Skip:  page.Skip,
		Limit: page.Limit,
	}
}

// NotFound names the missing resource, e.g. NotFound("Lead") yields
// "Lead not found" with the NOT_FOUND code.
func NotFound(resource string) *shared.DomainError {
	return shared.NewDomainError("NOT_FOUND", resource+" not found")
}

// TranslateNotFound replaces a bare repository not-found with a
// resource-specific message and passes other errors through.
func TranslateNotFound(err error, resource string) error {
	if errors.Is(err, shared.ErrNotFound) {
		return NotFound(resource)
	}
	return err
}

// Uintp returns a pointer to a copy of v
func Uintp(v uint) *uint {
	return &v
}
