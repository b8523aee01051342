package pagination

import (
	"github.com/gompdf/gridpdf/internal/res"
)

// Page is one page of the batch and the entries assigned to it, in input order.
type Page struct {
	// Index is zero-based.
	Index   int
	Width   float64
	Height  float64
	Entries []res.Entry
}

// PageSize represents standard page sizes
type PageSize struct {
	Width  float64
	Height float64
	Name   string
}

// PageSizeA4 is the default page size in points (1/72 inch).
var PageSizeA4 = PageSize{Width: 595.28, Height: 841.89, Name: "A4"}

// DefaultCapacity is the number of entries per page of a 2x3 grid.
const DefaultCapacity = 6

// Paginator splits an ordered entry list into fixed-capacity pages.
type Paginator struct {
	PageSize PageSize
	Capacity int
}

// NewPaginator creates a new paginator. A non-positive capacity falls back
// to DefaultCapacity.
func NewPaginator(pageSize PageSize, capacity int) *Paginator {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Paginator{
		PageSize: pageSize,
		Capacity: capacity,
	}
}

// PageCount returns ceil(n / capacity).
func PageCount(n, capacity int) int {
	if n <= 0 || capacity <= 0 {
		return 0
	}
	return (n + capacity - 1) / capacity
}

// Paginate assigns entries[p*Capacity : min((p+1)*Capacity, len)] to page p.
// Entries are never reordered and an empty input yields no pages.
func (p *Paginator) Paginate(entries []res.Entry) []*Page {
	total := PageCount(len(entries), p.Capacity)
	pages := make([]*Page, 0, total)

	for i := 0; i < total; i++ {
		start := i * p.Capacity
		end := min(start+p.Capacity, len(entries))

		page := &Page{
			Index:   i,
			Width:   p.PageSize.Width,
			Height:  p.PageSize.Height,
			Entries: make([]res.Entry, end-start),
		}
		copy(page.Entries, entries[start:end])
		pages = append(pages, page)
	}
	return pages
}

// Last reports whether page is the final page of a batch of total pages.
func (pg *Page) Last(total int) bool {
	return pg.Index == total-1
}
