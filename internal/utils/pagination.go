package utils

// Pagination is the standard paging object returned alongside paged lists.
type Pagination struct {
	Page    int  `json:"page"`
	Pages   int  `json:"pages"`
	PerPage int  `json:"per_page"`
	Total   int  `json:"total"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// Paginate builds the paging object for a list of total items viewed at the
// given page and page size. Page numbers start at 1; out-of-range values are
// clamped rather than rejected.
func Paginate(total, page, perPage int) Pagination {
	if perPage < 1 {
		perPage = 1
	}
	if page < 1 {
		page = 1
	}
	pages := (total + perPage - 1) / perPage
	return Pagination{
		Page:    page,
		Pages:   pages,
		PerPage: perPage,
		Total:   total,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}

// Offset returns the zero-based row offset for the page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}
