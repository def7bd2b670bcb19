// Package error defines domain-specific errors for the LedgerBook application.
package error

import "errors"

// Book domain errors.
var (
	// ErrBookNotFound is returned when a book is not found or hidden by a soft delete
	// of the book itself or of its owning team.
	ErrBookNotFound = errors.New("book not found")

	// ErrBookNameRequired is returned when the book name is empty.
	ErrBookNameRequired = errors.New("book name is required")

	// ErrBookNameTooLong is returned when the book name exceeds the maximum length.
	ErrBookNameTooLong = errors.New("book name too long")

	// ErrBookNotDeleted is returned when restoring a book that is currently active.
	ErrBookNotDeleted = errors.New("book is not deleted")

	// ErrBookNotSoftDeleted is returned when permanently deleting an active book.
	ErrBookNotSoftDeleted = errors.New("book must be soft-deleted first")
)

// BookErrorCode defines error codes for book errors.
// Format: BOOK-XXYYYY where XX is category and YYYY is specific error.
type BookErrorCode string

const (
	// Resource not found errors (01XXXX)
	ErrCodeBookNotFound BookErrorCode = "BOOK-010001"

	// Validation errors (02XXXX)
	ErrCodeBookNameRequired  BookErrorCode = "BOOK-020001"
	ErrCodeBookNameTooLong   BookErrorCode = "BOOK-020002"
	ErrCodeMissingBookFields BookErrorCode = "BOOK-020003"

	// Invalid lifecycle state errors (04XXXX)
	ErrCodeBookNotDeleted     BookErrorCode = "BOOK-040001"
	ErrCodeBookNotSoftDeleted BookErrorCode = "BOOK-040002"
)

// BookError represents a book error with code and message.
type BookError struct {
	Code    BookErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BookError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BookError) Unwrap() error {
	return e.Err
}

// NewBookError creates a new BookError with the given code and message.
func NewBookError(code BookErrorCode, message string, err error) *BookError {
	return &BookError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
