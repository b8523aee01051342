package api

import (
	"errors"
	"fmt"
)

// ErrorCode classifies why a batch failed.
type ErrorCode string

// Batch error codes.
const (
	// ErrCodeNotDirectory: the input path is missing or not a directory.
	ErrCodeNotDirectory ErrorCode = "NOT_DIRECTORY"
	// ErrCodeInvalidConfig: options describe an unusable page or grid.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodeOutputDir: the output directory could not be created.
	ErrCodeOutputDir ErrorCode = "OUTPUT_DIR"
	// ErrCodeNoImages: no file matched the image patterns.
	ErrCodeNoImages ErrorCode = "NO_IMAGES"
	// ErrCodeSave: the document could not be written.
	ErrCodeSave ErrorCode = "SAVE_FAILED"
)

// Error is a batch failure with a code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func wrapError(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsCode reports whether err carries code anywhere in its chain.
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from err, or "" if it has none.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
