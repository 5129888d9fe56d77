package domain

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

type PaginationParams struct {
	Page    int `query:"page"`
	PerPage int `query:"per_page"`
}

// Page is the envelope returned by every paginated listing.
type Page[T any] struct {
	Items   []T   `json:"items"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"has_next"`
}

func NewPage[T any](items []T, params PaginationParams, total int64) Page[T] {
	params.Normalize()
	if items == nil {
		items = []T{}
	}

	pages := int((total + int64(params.PerPage) - 1) / int64(params.PerPage))
	return Page[T]{
		Items:   items,
		Page:    params.Page,
		PerPage: params.PerPage,
		Total:   total,
		Pages:   pages,
		HasNext: params.Page < pages,
	}
}

func (p *PaginationParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = defaultPerPage
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
}

func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}
