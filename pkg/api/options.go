package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Options represents configuration options for the image batch converter
type Options struct {
	// Page dimensions
	PageWidth  float64
	PageHeight float64
	// Page orientation: portrait or landscape
	PageOrientation PageOrientation

	// Grid geometry
	Margin      float64
	InnerMargin float64
	Columns     int
	Rows        int

	// Captions
	CaptionFont     string
	CaptionFontSize float64
	CaptionOffset   float64

	// Discovery
	Patterns []string

	// Output naming
	OutputSubdir    string
	FilePrefix      string
	TimestampFormat string

	// Image handling
	AutoOrient  bool
	JPEGQuality int
	SVGDPI      float64

	// Visual rendering toggles
	// When true, outline every grid cell
	DebugDrawBoxes bool

	// Document metadata
	Title    string
	Author   string
	Subject  string
	Keywords string

	// Logger receives progress and per-image failures. Nil uses log.Default().
	Logger *log.Logger
	// Now stamps output file names. Nil uses time.Now.
	Now func() time.Time
}

// Option is a function that modifies Options
type Option func(*Options)

// PageOrientation represents page orientation
type PageOrientation string

const (
	// PageOrientationPortrait sets the page to portrait orientation
	PageOrientationPortrait PageOrientation = "portrait"
	// PageOrientationLandscape sets the page to landscape orientation
	PageOrientationLandscape PageOrientation = "landscape"
)

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		// Default to A4 paper size (595.28 x 841.89 points)
		PageWidth:       PageSizeA4Width,
		PageHeight:      PageSizeA4Height,
		PageOrientation: PageOrientationPortrait,

		// 2 columns x 3 rows, 40pt outer margin, 20pt between cells
		Margin:      40,
		InnerMargin: 20,
		Columns:     2,
		Rows:        3,

		CaptionFont:     "Helvetica",
		CaptionFontSize: 8,
		CaptionOffset:   15,

		Patterns: []string{"*.jpg", "*.jpeg", "*.png", "*.gif", "*.bmp"},

		OutputSubdir:    "pdf_output",
		FilePrefix:      "images",
		TimestampFormat: "20060102_150405",

		JPEGQuality: 90,
		SVGDPI:      96,
	}
}

// WithPageSize sets the page size
func WithPageSize(width, height float64) Option {
	return func(o *Options) {
		o.PageWidth = width
		o.PageHeight = height
	}
}

// WithPageOrientation sets the page orientation
func WithPageOrientation(orientation PageOrientation) Option {
	return func(o *Options) {
		o.PageOrientation = orientation
	}
}

// WithMargins sets the outer margin and the gap between cells
func WithMargins(margin, inner float64) Option {
	return func(o *Options) {
		o.Margin = margin
		o.InnerMargin = inner
	}
}

// WithGrid sets the number of columns and rows per page
func WithGrid(columns, rows int) Option {
	return func(o *Options) {
		o.Columns = columns
		o.Rows = rows
	}
}

// WithCaption sets the caption font, size and distance below the cell
func WithCaption(font string, size, offset float64) Option {
	return func(o *Options) {
		o.CaptionFont = font
		o.CaptionFontSize = size
		o.CaptionOffset = offset
	}
}

// WithPatterns replaces the glob patterns used to find images
func WithPatterns(patterns ...string) Option {
	return func(o *Options) {
		o.Patterns = patterns
	}
}

// WithOutputNaming sets the default output subdirectory, file prefix and
// timestamp layout
func WithOutputNaming(subdir, prefix, timestampFormat string) Option {
	return func(o *Options) {
		o.OutputSubdir = subdir
		o.FilePrefix = prefix
		o.TimestampFormat = timestampFormat
	}
}

// WithAutoOrient applies EXIF orientation to JPEG inputs
func WithAutoOrient(enabled bool) Option {
	return func(o *Options) {
		o.AutoOrient = enabled
	}
}

// WithDebugDrawBoxes outlines every grid cell
func WithDebugDrawBoxes(enabled bool) Option {
	return func(o *Options) {
		o.DebugDrawBoxes = enabled
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithAuthor sets the document author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithSubject sets the document subject
func WithSubject(subject string) Option {
	return func(o *Options) {
		o.Subject = subject
	}
}

// WithKeywords sets the document keywords
func WithKeywords(keywords string) Option {
	return func(o *Options) {
		o.Keywords = keywords
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithClock sets the clock used to name output files
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		o.Now = now
	}
}

// Standard page sizes in points (1/72 inch)
const (
	PageSizeA3Width  = 841.89
	PageSizeA3Height = 1190.55
	PageSizeA4Width  = 595.28
	PageSizeA4Height = 841.89
	PageSizeA5Width  = 419.53
	PageSizeA5Height = 595.28

	// US Letter and Legal
	PageSizeLetterWidth  = 612
	PageSizeLetterHeight = 792
	PageSizeLegalWidth   = 612
	PageSizeLegalHeight  = 1008
)

// PageSizeByName returns the portrait width and height of a named page size.
func PageSizeByName(name string) (float64, float64, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "a3":
		return PageSizeA3Width, PageSizeA3Height, nil
	case "a4", "":
		return PageSizeA4Width, PageSizeA4Height, nil
	case "a5":
		return PageSizeA5Width, PageSizeA5Height, nil
	case "letter":
		return PageSizeLetterWidth, PageSizeLetterHeight, nil
	case "legal":
		return PageSizeLegalWidth, PageSizeLegalHeight, nil
	}
	return 0, 0, fmt.Errorf("unknown page size %q", name)
}

// WithPageSizeA4 sets the page size to A4
func WithPageSizeA4() Option {
	return WithPageSize(PageSizeA4Width, PageSizeA4Height)
}

// WithPageSizeLetter sets the page size to US Letter
func WithPageSizeLetter() Option {
	return WithPageSize(PageSizeLetterWidth, PageSizeLetterHeight)
}

// orientedSize returns the page dimensions swapped to match the orientation.
func (o Options) orientedSize() (float64, float64) {
	w, h := o.PageWidth, o.PageHeight
	switch o.PageOrientation {
	case PageOrientationLandscape:
		if w < h {
			w, h = h, w
		}
	case PageOrientationPortrait, "":
		if w > h {
			w, h = h, w
		}
	}
	return w, h
}
