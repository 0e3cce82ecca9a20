package models

// QueryParams selects a page of persisted media.
type QueryParams struct {
	Page     int
	PageSize int
	Type     string
	Search   string
}

// Offset is the number of matching rows skipped before this page.
func (p QueryParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// QueryResult is one page of persisted media plus pagination totals.
type QueryResult struct {
	Items       []MediaItem `json:"items"`
	TotalItems  int         `json:"totalItems"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
}

// TotalPages computes ceil(total/pageSize), floored at 1.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}
