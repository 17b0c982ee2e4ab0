package domain

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest selects a 0-based page of Size items.
type PageRequest struct {
	Page int
	Size int
}

// PageLimits controls how absent or oversized page sizes are resolved.
type PageLimits struct {
	DefaultSize int
	MaxSize     int
}

func DefaultPageLimits() PageLimits {
	return PageLimits{DefaultSize: DefaultPageSize, MaxSize: MaxPageSize}
}

// ParsePageRequest reads raw query values. Empty values take defaults and a
// size above the limit is clamped to it; anything unparsable, a negative page
// or a size below 1 is an invalid argument.
func ParsePageRequest(page, size string, limits PageLimits) (PageRequest, error) {
	req := PageRequest{Page: 0, Size: limits.DefaultSize}

	if s := strings.TrimSpace(page); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return PageRequest{}, InvalidArgument("page must be an integer, got %q", page)
		}
		req.Page = n
	}

	if s := strings.TrimSpace(size); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return PageRequest{}, InvalidArgument("size must be an integer, got %q", size)
		}
		req.Size = n
	}

	if limits.MaxSize > 0 && req.Size > limits.MaxSize {
		req.Size = limits.MaxSize
	}

	if err := req.Validate(); err != nil {
		return PageRequest{}, err
	}
	return req, nil
}

func (r PageRequest) Validate() error {
	if r.Page < 0 {
		return InvalidArgument("page must not be negative, got %d", r.Page)
	}
	if r.Size < 1 {
		return InvalidArgument("size must be at least 1, got %d", r.Size)
	}
	if r.Page > math.MaxInt32/r.Size {
		return InvalidArgument("page %d is out of range", r.Page)
	}
	return nil
}

func (r PageRequest) Offset() int {
	return r.Page * r.Size
}

// Bounds returns the slice indexes of this page within n ordered items.
func (r PageRequest) Bounds(n int) (lo, hi int) {
	lo = min(r.Offset(), n)
	hi = min(lo+r.Size, n)
	return lo, hi
}

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Items         []T   `json:"items"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := 0
	if req.Size > 0 && total > 0 {
		totalPages = int((total-1)/int64(req.Size) + 1)
	}

	return Page[T]{
		Items:         items,
		TotalElements: total,
		TotalPages:    totalPages,
		PageNumber:    req.Page,
		PageSize:      req.Size,
		First:         req.Page == 0,
		Last:          req.Page+1 >= totalPages,
	}
}
