package res

import "errors"

var (
	// ErrNotDirectory is returned by Discover when the input is not a directory.
	ErrNotDirectory = errors.New("not a directory")
	// ErrNotFound is returned when an image file does not exist.
	ErrNotFound = errors.New("image file not found")
	// ErrUnsupported is returned for files no registered decoder recognizes.
	ErrUnsupported = errors.New("unsupported image format")
	// ErrDecode is returned when image data is corrupt or truncated.
	ErrDecode = errors.New("invalid image data")
	// ErrEmptyImage is returned for images with a zero width or height.
	ErrEmptyImage = errors.New("image has no pixels")
)
