package gridpdf

import (
	"github.com/gompdf/gridpdf/pkg/api"
)

type Converter = api.Converter
type Options = api.Options
type Option = api.Option
type PageOrientation = api.PageOrientation
type Entry = api.Entry
type Result = api.Result
type Error = api.Error
type ErrorCode = api.ErrorCode

func New() *Converter                           { return api.New() }
func NewWithOptions(options Options) *Converter { return api.NewWithOptions(options) }
func DefaultOptions() Options                   { return api.DefaultOptions() }

var (
	WithPageSize        = api.WithPageSize
	WithPageOrientation = api.WithPageOrientation
	WithMargins         = api.WithMargins
	WithGrid            = api.WithGrid
	WithCaption         = api.WithCaption
	WithPatterns        = api.WithPatterns
	WithOutputNaming    = api.WithOutputNaming
	WithAutoOrient      = api.WithAutoOrient
	WithDebugDrawBoxes  = api.WithDebugDrawBoxes
	WithTitle           = api.WithTitle
	WithAuthor          = api.WithAuthor
	WithSubject         = api.WithSubject
	WithKeywords        = api.WithKeywords
	WithLogger          = api.WithLogger
	WithClock           = api.WithClock
	WithPageSizeA4      = api.WithPageSizeA4
	WithPageSizeLetter  = api.WithPageSizeLetter

	PageSizeByName = api.PageSizeByName
	IsCode         = api.IsCode
	GetCode        = api.GetCode
)

const (
	PageSizeA3Width  = api.PageSizeA3Width
	PageSizeA3Height = api.PageSizeA3Height
	PageSizeA4Width  = api.PageSizeA4Width
	PageSizeA4Height = api.PageSizeA4Height
	PageSizeA5Width  = api.PageSizeA5Width
	PageSizeA5Height = api.PageSizeA5Height

	PageSizeLetterWidth  = api.PageSizeLetterWidth
	PageSizeLetterHeight = api.PageSizeLetterHeight
	PageSizeLegalWidth   = api.PageSizeLegalWidth
	PageSizeLegalHeight  = api.PageSizeLegalHeight

	PageOrientationPortrait  = api.PageOrientationPortrait
	PageOrientationLandscape = api.PageOrientationLandscape

	ErrCodeNotDirectory  = api.ErrCodeNotDirectory
	ErrCodeInvalidConfig = api.ErrCodeInvalidConfig
	ErrCodeOutputDir     = api.ErrCodeOutputDir
	ErrCodeNoImages      = api.ErrCodeNoImages
	ErrCodeSave          = api.ErrCodeSave
)
