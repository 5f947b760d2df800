package shared

import (
	"net/url"
	"strconv"
)

// Filter represents list query options shared by every entity resource.
// Filters carries domain-specific key/value constraints (status, channel,
// department and so on) that the individual list endpoints understand.
type Filter struct {
	Page    int               `json:"page"`
	Limit   int               `json:"limit"`
	Search  string            `json:"search,omitempty"`
	Status  string            `json:"status,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:  1,
		Limit: 20,
	}
}

// Values encodes the filter as URL query parameters, the shape list
// endpoints accept
func (f Filter) Values() url.Values {
	f = f.Normalize()
	v := url.Values{}
	v.Set("page", strconv.Itoa(f.Page))
	v.Set("limit", strconv.Itoa(f.Limit))
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Status != "" {
		v.Set("status", f.Status)
	}
	for key, value := range f.Filters {
		if value != "" {
			v.Set(key, value)
		}
	}
	return v
}

// Normalize clamps page and limit to sane values, leaving the rest intact
func (f Filter) Normalize() Filter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	return f
}

// Paginated represents a paginated list result
type Paginated[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// NewPaginated creates a paginated result with computed page count
func NewPaginated[T any](data []T, total int64, page, limit int) Paginated[T] {
	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}
	return Paginated[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// Slice returns the page of items selected by the filter, the way the mock
// backend pages over its fixture arrays: the returned slice has length
// min(limit, max(0, len(items)-(page-1)*limit)).
func Slice[T any](items []T, f Filter) Paginated[T] {
	f = f.Normalize()
	start := (f.Page - 1) * f.Limit
	if start > len(items) {
		start = len(items)
	}
	end := start + f.Limit
	if end > len(items) {
		end = len(items)
	}
	page := make([]T, end-start)
	copy(page, items[start:end])
	return NewPaginated(page, int64(len(items)), f.Page, f.Limit)
}
