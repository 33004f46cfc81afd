package pagination

import "math"

// Params is a normalised page request.
type Params struct {
	Page    int
	PerPage int
}

// NewParams clamps raw query values: page to >= 1, perPage to [1, limit],
// with def used when perPage is zero (not supplied).
func NewParams(page, perPage, def, limit int) Params {
	if page < 1 {
		page = 1
	}
	if perPage == 0 {
		perPage = def
	}
	if perPage > limit {
		perPage = limit
	}
	if perPage < 1 {
		perPage = 1
	}
	return Params{Page: page, PerPage: perPage}
}

// Offset is the number of rows to skip.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Page is one slice of a listing plus its metadata.
type Page[T any] struct {
	Data        []T   `json:"data"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// NewPage computes page metadata around the fetched rows.
func NewPage[T any](data []T, p Params, total int64) Page[T] {
	if data == nil {
		data = []T{}
	}
	lastPage := int(math.Ceil(float64(total) / float64(p.PerPage)))
	if lastPage < 1 {
		lastPage = 1
	}
	return Page[T]{
		Data:        data,
		CurrentPage: p.Page,
		PerPage:     p.PerPage,
		Total:       total,
		LastPage:    lastPage,
	}
}
