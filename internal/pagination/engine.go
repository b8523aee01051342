package pagination

import (
	"github.com/gompdf/gridpdf/internal/res"
)

// Options represents options for the pagination engine
type Options struct {
	PageWidth  float64
	PageHeight float64
	// Capacity is the number of cells on a page.
	Capacity int
}

// Engine handles the pagination process
type Engine struct {
	options Options
}

// NewEngine creates a new pagination engine
func NewEngine() *Engine {
	return &Engine{
		options: Options{
			PageWidth:  PageSizeA4.Width,
			PageHeight: PageSizeA4.Height,
			Capacity:   DefaultCapacity,
		},
	}
}

// SetOptions sets the options for the pagination engine
func (e *Engine) SetOptions(options Options) {
	e.options = options
}

// Paginate breaks entries into pages
func (e *Engine) Paginate(entries []res.Entry) []*Page {
	paginator := NewPaginator(
		PageSize{
			Width:  e.options.PageWidth,
			Height: e.options.PageHeight,
			Name:   "Custom",
		},
		e.options.Capacity,
	)

	return paginator.Paginate(entries)
}
