package domain

// Paging is one page of a larger result set. Page numbers are 1-based.
type Paging[T any] struct {
	Data    []T  `json:"data"`
	Page    int  `json:"page"`
	Size    int  `json:"size"`
	Total   int  `json:"total"`
	HasNext bool `json:"has_next"`
}

// EmptyPage returns a page with no data for the requested page/size.
func EmptyPage[T any](page, size int) Paging[T] {
	return Paging[T]{Data: []T{}, Page: page, Size: size}
}

// TotalPages returns the number of pages needed for Total items.
func (p Paging[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return (p.Total + p.Size - 1) / p.Size
}

// HasPrev reports whether a previous page exists.
func (p Paging[T]) HasPrev() bool {
	return p.Page > 1
}
