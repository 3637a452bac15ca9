package types

// PagedResults is one page of a list endpoint.
//
// TotalItems is the count reported by the server. When the server omits it (or
// reports zero) while still returning items, the decoder substitutes len(Items).
type PagedResults[T any] struct {
	Items      []T
	TotalItems int
	Offset     int
	Limit      int
}

// PageSize returns the effective page size (Limit, or the item count when no limit was sent)
func (p *PagedResults[T]) PageSize() int {
	if p.Limit > 0 {
		return p.Limit
	}
	return len(p.Items)
}

// CurrentPage returns the 1-based page index of this page
func (p *PagedResults[T]) CurrentPage() int {
	size := p.PageSize()
	if size == 0 {
		return 1
	}
	return p.Offset/size + 1
}

// TotalPages returns how many pages of PageSize the server holds
func (p *PagedResults[T]) TotalPages() int {
	size := p.PageSize()
	if size == 0 {
		return 0
	}
	return (p.TotalItems + size - 1) / size
}

// HasMore reports whether items beyond this page exist
func (p *PagedResults[T]) HasMore() bool {
	return p.Offset+len(p.Items) < p.TotalItems
}
