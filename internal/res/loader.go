package res

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Image types understood by the PDF backend.
const (
	TypeJPG = "JPG"
	TypePNG = "PNG"
)

// Image is a validated image ready to be embedded.
type Image struct {
	Entry

	// Width and Height are the natural pixel dimensions, after any
	// orientation correction.
	Width  int
	Height int

	MimeType string
	// Type is TypeJPG or TypePNG and describes Data.
	Type string
	Data []byte
}

// Loader reads and normalizes image files.
type Loader struct {
	// AutoOrient applies EXIF orientation while decoding.
	AutoOrient bool
	// JPEGQuality is used when a JPEG has to be re-encoded.
	JPEGQuality int
	// SVGDPI controls the raster resolution of SVG inputs. SVG user units
	// are taken as 1/96 inch.
	SVGDPI float64
}

// NewLoader creates a loader with default settings.
func NewLoader() *Loader {
	return &Loader{
		JPEGQuality: 90,
		SVGDPI:      96,
	}
}

// LoadImage reads path, fully decodes it to make sure it is intact, and
// returns the bytes the PDF backend should embed. The file is closed before
// LoadImage returns, whether or not decoding succeeds.
func (l *Loader) LoadImage(path string) (*Image, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	mime := determineMimeType(path)
	var img *Image
	if mime == "image/svg+xml" {
		img, err = l.rasterizeSVG(data)
	} else {
		img, err = l.decodeRaster(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	img.Entry = NewEntry(path)
	img.MimeType = mime
	return img, nil
}

func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnsupported, path)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// decodeRaster validates data and normalizes it. JPEG data is embedded as is
// unless it has to be rotated; every other format is re-encoded as 8-bit PNG.
func (l *Loader) decodeRaster(data []byte) (*Image, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupported
		}
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	decoded, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(l.AutoOrient))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	b := decoded.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyImage
	}

	img := &Image{Width: b.Dx(), Height: b.Dy()}
	switch {
	case format == "jpeg" && !l.AutoOrient:
		img.Type = TypeJPG
		img.Data = data
	case format == "jpeg":
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, decoded, imaging.JPEG, imaging.JPEGQuality(l.jpegQuality())); err != nil {
			return nil, fmt.Errorf("failed to re-encode JPEG: %w", err)
		}
		img.Type = TypeJPG
		img.Data = buf.Bytes()
	default:
		encoded, err := encodePNG(decoded)
		if err != nil {
			return nil, err
		}
		img.Type = TypePNG
		img.Data = encoded
	}
	return img, nil
}

func (l *Loader) rasterizeSVG(data []byte) (*Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	dpi := l.SVGDPI
	if dpi <= 0 {
		dpi = 96
	}
	w := int(math.Ceil(icon.ViewBox.W * dpi / 96))
	h := int(math.Ceil(icon.ViewBox.H * dpi / 96))
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyImage
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)

	png, err := encodePNG(rgba)
	if err != nil {
		return nil, err
	}
	return &Image{Width: w, Height: h, Type: TypePNG, Data: png}, nil
}

// encodePNG writes img as a non-interlaced 8-bit PNG, the only PNG flavour
// the PDF backend embeds reliably.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.Clone(img), imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func (l *Loader) jpegQuality() int {
	if l.JPEGQuality < 1 || l.JPEGQuality > 100 {
		return 90
	}
	return l.JPEGQuality
}

// determineMimeType determines the MIME type of a file
func determineMimeType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".tiff", ".tif":
		return "image/tiff"
	case ".bmp":
		return "image/bmp"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
