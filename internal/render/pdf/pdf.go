package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/go-pdf/fpdf"
	"github.com/charmbracelet/log"

	"github.com/gompdf/gridpdf/internal/layout"
	"github.com/gompdf/gridpdf/internal/pagination"
	"github.com/gompdf/gridpdf/internal/res"
	"github.com/gompdf/gridpdf/internal/text"
)

// ErrNoPages is returned when Render is called without any page.
var ErrNoPages = errors.New("no pages to render")

// Renderer handles rendering to PDF
type Renderer struct {
	Grid   layout.Grid
	Loader *res.Loader
	Logger *log.Logger

	// CaptionFont must be one of the standard PDF fonts.
	CaptionFont     string
	CaptionFontSize float64

	// DebugDrawBoxes outlines every cell.
	DebugDrawBoxes bool
}

// RenderOptions contains options for rendering
type RenderOptions struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string
}

// Placed records where one entry ended up.
type Placed struct {
	Page int
	Slot int
	Row  int
	Col  int

	Path    string
	Caption string

	// Cell and Image use a lower-left origin.
	Cell      layout.Rect
	Image     layout.Rect
	Placement layout.Placement
}

// Failure records an entry that was skipped.
type Failure struct {
	Page int
	Path string
	Err  error
}

// Stats summarizes a render.
type Stats struct {
	Pages      int
	Placed     int
	Skipped    int
	Placements []Placed
	Failures   []Failure
}

// NewRenderer creates a new PDF renderer
func NewRenderer(grid layout.Grid, loader *res.Loader, logger *log.Logger) *Renderer {
	if loader == nil {
		loader = res.NewLoader()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{
		Grid:            grid,
		Loader:          loader,
		Logger:          logger,
		CaptionFont:     "Helvetica",
		CaptionFontSize: 8,
	}
}

// Render draws pages in order and saves the document to outputPath.
//
// Each page starts on a new PDF page. Entries that cannot be loaded or drawn
// are logged and skipped, and the following entries on that page move up to
// fill their slot. Only a failure to write the file is returned as an error,
// in which case a partial file may be left behind.
func (r *Renderer) Render(pages []*pagination.Page, outputPath string, options RenderOptions) (*Stats, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	if err := r.Grid.Validate(); err != nil {
		return nil, err
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: r.Grid.PageWidth, Ht: r.Grid.PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetTitle(options.Title, true)
	pdf.SetAuthor(options.Author, true)
	pdf.SetSubject(options.Subject, true)
	pdf.SetKeywords(options.Keywords, true)
	pdf.SetCreator(options.Creator, true)
	pdf.SetProducer(options.Producer, true)

	pdf.SetFont(r.CaptionFont, "", r.CaptionFontSize)
	if pdf.Err() {
		return nil, fmt.Errorf("invalid caption font %q: %w", r.CaptionFont, pdf.Error())
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	stats := &Stats{}
	for _, page := range pages {
		pdf.AddPage()
		stats.Pages++
		r.Logger.Debug("rendering page", "page", page.Index+1, "of", len(pages), "entries", len(page.Entries))

		if r.DebugDrawBoxes {
			r.drawCells(pdf)
		}

		slot := 0
		for _, entry := range page.Entries {
			if slot >= r.Grid.Capacity() {
				r.Logger.Warn("page is full, skipping image", "path", entry.Path, "page", page.Index+1)
				stats.skip(page.Index, entry.Path, fmt.Errorf("page %d is full", page.Index+1))
				continue
			}

			placed, err := r.place(pdf, tr, entry, page.Index, slot)
			if err != nil {
				if errors.Is(err, res.ErrNotFound) {
					r.Logger.Warn("image file does not exist, skipping", "path", entry.Path)
				} else {
					r.Logger.Error("failed to place image, skipping", "path", entry.Path, "err", err)
				}
				stats.skip(page.Index, entry.Path, err)
				continue
			}

			r.Logger.Debug("added image", "file", entry.Caption, "page", page.Index+1, "row", placed.Row, "col", placed.Col)
			stats.Placed++
			stats.Placements = append(stats.Placements, *placed)
			slot++
		}
	}

	outputDir := filepath.Dir(outputPath)
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return stats, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return stats, fmt.Errorf("failed to write PDF: %w", err)
	}
	return stats, nil
}

// place draws entry into slot of the current page.
func (r *Renderer) place(pdf *fpdf.Fpdf, tr func(string) string, entry res.Entry, pageIndex, slot int) (*Placed, error) {
	img, err := r.Loader.LoadImage(entry.Path)
	if err != nil {
		return nil, err
	}

	opts := fpdf.ImageOptions{ImageType: img.Type}
	pdf.RegisterImageOptionsReader(entry.Path, opts, bytes.NewReader(img.Data))
	if err := takeError(pdf); err != nil {
		return nil, fmt.Errorf("failed to embed image: %w", err)
	}

	row, col := r.Grid.Slot(slot)
	cell := r.Grid.Cell(row, col)
	placement := layout.ComputePlacement(float64(img.Width), float64(img.Height), cell.W, cell.H)
	drawn := placement.Rect(cell)

	box := r.Grid.ToTopLeft(drawn)
	pdf.ImageOptions(entry.Path, box.X, box.Y, box.W, box.H, false, opts, 0, "")
	if err := takeError(pdf); err != nil {
		return nil, fmt.Errorf("failed to draw image: %w", err)
	}

	caption := text.Clean(entry.Caption)
	if caption == "" {
		caption = filepath.Base(entry.Path)
	}
	r.drawCaption(pdf, tr(caption), cell)

	return &Placed{
		Page:      pageIndex,
		Slot:      slot,
		Row:       row,
		Col:       col,
		Path:      entry.Path,
		Caption:   caption,
		Cell:      cell,
		Image:     drawn,
		Placement: placement,
	}, nil
}

// drawCaption centers text under cell, shortening it to the cell width.
func (r *Renderer) drawCaption(pdf *fpdf.Fpdf, caption string, cell layout.Rect) {
	pdf.SetFont(r.CaptionFont, "", r.CaptionFontSize)
	pdf.SetTextColor(0, 0, 0)

	caption = text.Fit(caption, cell.W, pdf.GetStringWidth)
	x, y := r.Grid.CaptionAnchor(cell, pdf.GetStringWidth(caption))
	pdf.Text(x, r.Grid.FlipY(y), caption)
}

func (r *Renderer) drawCells(pdf *fpdf.Fpdf) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.5)
	for i := 0; i < r.Grid.Capacity(); i++ {
		box := r.Grid.ToTopLeft(r.Grid.Cell(r.Grid.Slot(i)))
		pdf.Rect(box.X, box.Y, box.W, box.H, "D")
	}
}

// takeError returns and clears the document error so later entries can
// still be drawn.
func takeError(pdf *fpdf.Fpdf) error {
	if !pdf.Ok() {
		err := pdf.Error()
		pdf.ClearError()
		return err
	}
	return nil
}

func (s *Stats) skip(page int, path string, err error) {
	s.Skipped++
	s.Failures = append(s.Failures, Failure{Page: page, Path: path, Err: err})
}
