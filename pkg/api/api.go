package api

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gompdf/gridpdf/internal/layout"
	"github.com/gompdf/gridpdf/internal/logging"
	"github.com/gompdf/gridpdf/internal/pagination"
	"github.com/gompdf/gridpdf/internal/render/pdf"
	"github.com/gompdf/gridpdf/internal/res"
)

const producer = "gridpdf"

// Entry is one image to place, with the caption printed under it.
type Entry = res.Entry

// Result summarizes a finished batch.
type Result struct {
	OutputPath string
	Pages      int
	Placed     int
	Skipped    int
	Duration   time.Duration
}

// Converter is the main API for laying out image batches as PDF grids
type Converter struct {
	options Options
}

// New creates a new converter with default options
func New() *Converter {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a new converter with the specified options
func NewWithOptions(options Options) *Converter {
	return &Converter{options: options}
}

// Options returns a copy of the converter options
func (c *Converter) Options() Options {
	return c.options
}

// ConvertDir lays out every image in inputDir matching the configured
// patterns and writes one PDF into outputDir. An empty outputDir means
// <inputDir>/<OutputSubdir>.
func (c *Converter) ConvertDir(inputDir, outputDir string) (*Result, error) {
	logger := c.logger()

	info, err := os.Stat(inputDir)
	if err != nil || !info.IsDir() {
		return nil, wrapError(ErrCodeNotDirectory, err, "input directory %q does not exist or is not a directory", inputDir)
	}
	if _, err := c.grid(); err != nil {
		return nil, err
	}

	if outputDir == "" {
		outputDir = filepath.Join(inputDir, c.options.OutputSubdir)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, wrapError(ErrCodeOutputDir, err, "failed to create output directory %q", outputDir)
	}

	entries, err := res.Discover(inputDir, c.patterns(), logger)
	if err != nil {
		return nil, wrapError(ErrCodeInvalidConfig, err, "failed to scan %q", inputDir)
	}
	if len(entries) == 0 {
		logger.Warn("no images found", "dir", inputDir, "patterns", c.patterns())
		return nil, newError(ErrCodeNoImages, "no images found in %q", inputDir)
	}
	logger.Info("found images", "count", len(entries), "dir", inputDir)

	return c.ConvertEntries(entries, c.outputPath(outputDir))
}

// ConvertEntries lays out entries in order and writes the PDF to outputPath.
// Entries that cannot be loaded are logged and skipped.
func (c *Converter) ConvertEntries(entries []Entry, outputPath string) (*Result, error) {
	logger := c.logger()
	progress := logging.NewProgress(logger)

	if len(entries) == 0 {
		return nil, newError(ErrCodeNoImages, "no images to convert")
	}
	grid, err := c.grid()
	if err != nil {
		return nil, err
	}

	paginationEngine := pagination.NewEngine()
	paginationEngine.SetOptions(pagination.Options{
		PageWidth:  grid.PageWidth,
		PageHeight: grid.PageHeight,
		Capacity:   grid.Capacity(),
	})
	pages := paginationEngine.Paginate(entries)
	logger.Info("planned pages", "pages", len(pages), "images", len(entries), "per_page", grid.Capacity())

	loader := res.NewLoader()
	loader.AutoOrient = c.options.AutoOrient
	if c.options.JPEGQuality > 0 {
		loader.JPEGQuality = c.options.JPEGQuality
	}
	if c.options.SVGDPI > 0 {
		loader.SVGDPI = c.options.SVGDPI
	}

	renderer := pdf.NewRenderer(grid, loader, logger)
	if c.options.CaptionFont != "" {
		renderer.CaptionFont = c.options.CaptionFont
	}
	if c.options.CaptionFontSize > 0 {
		renderer.CaptionFontSize = c.options.CaptionFontSize
	}
	renderer.DebugDrawBoxes = c.options.DebugDrawBoxes

	renderOptions := pdf.RenderOptions{
		Title:    c.options.Title,
		Author:   c.options.Author,
		Subject:  c.options.Subject,
		Keywords: c.options.Keywords,
		Creator:  producer,
		Producer: producer,
	}

	stats, err := renderer.Render(pages, outputPath, renderOptions)
	if err != nil {
		if stats == nil {
			return nil, wrapError(ErrCodeInvalidConfig, err, "cannot render %q", outputPath)
		}
		return nil, wrapError(ErrCodeSave, err, "failed to save %q", outputPath)
	}

	result := &Result{
		OutputPath: outputPath,
		Pages:      stats.Pages,
		Placed:     stats.Placed,
		Skipped:    stats.Skipped,
	}
	result.Duration = progress.Done("PDF created", "path", outputPath, "pages", result.Pages,
		"placed", result.Placed, "skipped", result.Skipped)
	return result, nil
}

// grid builds the page grid from the options, swapping width and height to
// match the orientation.
func (c *Converter) grid() (layout.Grid, error) {
	w, h := c.options.orientedSize()
	grid := layout.Grid{
		PageWidth:     w,
		PageHeight:    h,
		Margin:        c.options.Margin,
		InnerMargin:   c.options.InnerMargin,
		Columns:       c.options.Columns,
		Rows:          c.options.Rows,
		CaptionOffset: c.options.CaptionOffset,
	}
	if err := grid.Validate(); err != nil {
		return grid, wrapError(ErrCodeInvalidConfig, err, "invalid page layout")
	}
	return grid, nil
}

func (c *Converter) patterns() []string {
	if len(c.options.Patterns) == 0 {
		return res.DefaultPatterns
	}
	return c.options.Patterns
}

func (c *Converter) logger() *log.Logger {
	if c.options.Logger != nil {
		return c.options.Logger
	}
	return log.Default()
}

// outputPath returns <dir>/<prefix>_<timestamp>.pdf, adding _2, _3, ... when
// that file already exists.
func (c *Converter) outputPath(dir string) string {
	now := time.Now
	if c.options.Now != nil {
		now = c.options.Now
	}
	prefix := c.options.FilePrefix
	if prefix == "" {
		prefix = "images"
	}
	format := c.options.TimestampFormat
	if format == "" {
		format = "20060102_150405"
	}

	base := fmt.Sprintf("%s_%s", prefix, now().Format(format))
	path := filepath.Join(dir, base+".pdf")
	for n := 2; fileExists(path); n++ {
		path = filepath.Join(dir, fmt.Sprintf("%s_%d.pdf", base, n))
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WithOptions returns a new converter with the specified options
func (c *Converter) WithOptions(options Options) *Converter {
	return NewWithOptions(options)
}

// WithOption returns a new converter with the specified option set
func (c *Converter) WithOption(option Option) *Converter {
	newOptions := c.options
	option(&newOptions)
	return NewWithOptions(newOptions)
}

// SetPageSize sets the page size
func (c *Converter) SetPageSize(width, height float64) *Converter {
	newOptions := c.options
	newOptions.PageWidth = width
	newOptions.PageHeight = height
	return NewWithOptions(newOptions)
}

// SetMargins sets the outer margin and the gap between cells
func (c *Converter) SetMargins(margin, inner float64) *Converter {
	newOptions := c.options
	newOptions.Margin = margin
	newOptions.InnerMargin = inner
	return NewWithOptions(newOptions)
}

// SetGrid sets the number of columns and rows
func (c *Converter) SetGrid(columns, rows int) *Converter {
	newOptions := c.options
	newOptions.Columns = columns
	newOptions.Rows = rows
	return NewWithOptions(newOptions)
}

// SetLogger sets the logger
func (c *Converter) SetLogger(logger *log.Logger) *Converter {
	newOptions := c.options
	newOptions.Logger = logger
	return NewWithOptions(newOptions)
}

// SetTitle sets the document title
func (c *Converter) SetTitle(title string) *Converter {
	newOptions := c.options
	newOptions.Title = title
	return NewWithOptions(newOptions)
}

// SetAuthor sets the document author
func (c *Converter) SetAuthor(author string) *Converter {
	newOptions := c.options
	newOptions.Author = author
	return NewWithOptions(newOptions)
}
