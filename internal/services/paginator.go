// internal/services/paginator.go
package services

// PageSize is the fixed number of catalog items per page.
const PageSize = 12

// PageCount is max(1, ceil(total/size)).
func PageCount(total, size int) int {
	if size <= 0 {
		size = PageSize
	}
	if total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// ClampPage keeps page within [1, PageCount(total, size)].
func ClampPage(page, total, size int) int {
	if page < 1 {
		return 1
	}
	if pages := PageCount(total, size); page > pages {
		return pages
	}
	return page
}

// PageSlice returns the items of the given page, clamping the page first.
func PageSlice[T any](items []T, page, size int) []T {
	if size <= 0 {
		size = PageSize
	}
	page = ClampPage(page, len(items), size)

	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Paginator tracks the current page over a list of known length.
type Paginator struct {
	page  int
	size  int
	total int
}

func NewPaginator(total int) *Paginator {
	return &Paginator{page: 1, size: PageSize, total: total}
}

func (p *Paginator) Page() int     { return p.page }
func (p *Paginator) PageSize() int { return p.size }
func (p *Paginator) Total() int    { return p.total }

func (p *Paginator) Pages() int {
	return PageCount(p.total, p.size)
}

// Reset is called whenever the underlying list changes.
func (p *Paginator) Reset(total int) {
	p.total = total
	p.page = 1
}

func (p *Paginator) Previous() {
	if p.page > 1 {
		p.page--
	}
}

func (p *Paginator) Next() {
	if p.page < p.Pages() {
		p.page++
	}
}

// Jump moves to page, clamping out-of-range requests.
func (p *Paginator) Jump(page int) {
	p.page = ClampPage(page, p.total, p.size)
}

func (p *Paginator) HasPrevious() bool { return p.page > 1 }
func (p *Paginator) HasNext() bool     { return p.page < p.Pages() }
