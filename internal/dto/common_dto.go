package dto

// PageFilter carries the shared pagination query params.
// Defaults: page=1, page_size=10; page_size is capped at 100.
type PageFilter struct {
	Page  int `form:"page"`
	Limit int `form:"page_size"`
}

// Normalize clamps the filter to sane bounds.
func (f *PageFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
}

// Page is the pagination envelope every list endpoint returns.
type Page struct {
	Results     interface{} `json:"results"`
	PageSize    int         `json:"pageSize"`
	CurrentPage int         `json:"currentPage"`
	Previous    *string     `json:"previous"`
	Next        *string     `json:"next"`
	TotalItems  int64       `json:"totalItems"`
	TotalPages  int64       `json:"totalPages"`
}
