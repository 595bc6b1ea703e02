// Package errors defines the sentinel errors of the matching service and an
// AppError wrapper that carries an HTTP status through the call boundary.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidColumn is returned when the requested match column is not
	// present on the candidate table.
	ErrInvalidColumn = errors.New("invalid match column")
	// ErrInvalidMethod is returned for an unrecognized matching method name.
	ErrInvalidMethod = errors.New("invalid matching method")
	// ErrInvalidInput is returned for malformed request parameters.
	ErrInvalidInput = errors.New("invalid input")
	// ErrCatalogUnavailable is returned when no candidate set has been loaded.
	ErrCatalogUnavailable = errors.New("candidate catalog unavailable")
	// ErrDictionaryUnavailable is returned when the acronym dictionary source
	// cannot be reached and no fallback exists.
	ErrDictionaryUnavailable = errors.New("acronym dictionary unavailable")
	// ErrInternal is the catch-all for unexpected failures.
	ErrInternal = errors.New("internal error")
	// ErrTimeout is returned when an operation exceeds its deadline.
	ErrTimeout = errors.New("operation timed out")
)

// AppError pairs a sentinel error with a human-readable message and an
// explicit HTTP status code.
type AppError struct {
	Err        error
	Message    string
	StatusCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New wraps a sentinel error with a status code and message.
func New(sentinel error, statusCode int, message string) *AppError {
	return &AppError{
		Err:        sentinel,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Newf wraps a sentinel error with a status code and a formatted message.
func Newf(sentinel error, statusCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:        sentinel,
		Message:    fmt.Sprintf(format, args...),
		StatusCode: statusCode,
	}
}

// HTTPStatusCode maps an error to the HTTP status it should produce at the
// request boundary.
func HTTPStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, ErrInvalidColumn),
		errors.Is(err, ErrInvalidMethod),
		errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrCatalogUnavailable),
		errors.Is(err, ErrDictionaryUnavailable),
		errors.Is(err, ErrTimeout):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
