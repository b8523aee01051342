package layout

import (
	"errors"
	"fmt"
)

// Default grid geometry in points (1/72 inch).
const (
	DefaultColumns       = 2
	DefaultRows          = 3
	DefaultMargin        = 40
	DefaultInnerMargin   = 20
	DefaultCaptionOffset = 15
)

// Grid describes a page divided into Columns x Rows equal cells separated by
// InnerMargin and inset from the page edge by Margin. Coordinates use a
// lower-left origin and row 0 is the top row.
type Grid struct {
	PageWidth   float64
	PageHeight  float64
	Margin      float64
	InnerMargin float64
	Columns     int
	Rows        int

	// CaptionOffset is the distance from a cell's bottom edge down to the
	// caption baseline.
	CaptionOffset float64
}

// NewGrid returns the default 2x3 grid for a page of the given size.
func NewGrid(pageWidth, pageHeight float64) Grid {
	return Grid{
		PageWidth:     pageWidth,
		PageHeight:    pageHeight,
		Margin:        DefaultMargin,
		InnerMargin:   DefaultInnerMargin,
		Columns:       DefaultColumns,
		Rows:          DefaultRows,
		CaptionOffset: DefaultCaptionOffset,
	}
}

// Validate reports geometry that cannot produce a usable cell.
func (g Grid) Validate() error {
	if g.PageWidth <= 0 || g.PageHeight <= 0 {
		return fmt.Errorf("invalid page size %.2fx%.2f", g.PageWidth, g.PageHeight)
	}
	if g.Columns <= 0 || g.Rows <= 0 {
		return fmt.Errorf("invalid grid shape %dx%d", g.Columns, g.Rows)
	}
	if g.Margin < 0 || g.InnerMargin < 0 {
		return errors.New("margins must not be negative")
	}
	if w, h := g.CellSize(); w <= 0 || h <= 0 {
		return fmt.Errorf("margins leave no room for cells (cell %.2fx%.2f)", w, h)
	}
	return nil
}

// Capacity is the number of cells on one page.
func (g Grid) Capacity() int {
	return g.Columns * g.Rows
}

// CellSize returns the width and height shared by every cell.
func (g Grid) CellSize() (float64, float64) {
	cols := float64(g.Columns)
	rows := float64(g.Rows)
	w := (g.PageWidth - 2*g.Margin - (cols-1)*g.InnerMargin) / cols
	h := (g.PageHeight - 2*g.Margin - (rows-1)*g.InnerMargin) / rows
	return w, h
}

// Slot maps the i-th placed image on a page to its row and column, filling
// rows left to right and top to bottom.
func (g Grid) Slot(i int) (row, col int) {
	return i / g.Columns, i % g.Columns
}

// Cell returns the bounding box of the cell at row, col.
func (g Grid) Cell(row, col int) Rect {
	w, h := g.CellSize()
	return Rect{
		X: g.Margin + float64(col)*(w+g.InnerMargin),
		Y: g.PageHeight - g.Margin - float64(row+1)*h - float64(row)*g.InnerMargin,
		W: w,
		H: h,
	}
}

// Area is the drawable region inside the outer margin.
func (g Grid) Area() Rect {
	return Rect{
		X: g.Margin,
		Y: g.Margin,
		W: g.PageWidth - 2*g.Margin,
		H: g.PageHeight - 2*g.Margin,
	}
}

// CaptionAnchor returns the baseline origin of a caption textWidth wide,
// centered under cell.
func (g Grid) CaptionAnchor(cell Rect, textWidth float64) (float64, float64) {
	return cell.X + (cell.W-textWidth)/2, cell.Y - g.CaptionOffset
}

// ToTopLeft converts r to a top-left origin, where Y names the top edge and
// grows downwards.
func (g Grid) ToTopLeft(r Rect) Rect {
	return Rect{X: r.X, Y: g.PageHeight - r.Top(), W: r.W, H: r.H}
}

// FlipY converts a single y coordinate between origins.
func (g Grid) FlipY(y float64) float64 {
	return g.PageHeight - y
}
