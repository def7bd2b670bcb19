// Package error defines domain-specific errors for the LedgerBook application.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found in the system.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrParentCategoryNotFound is returned when the referenced parent category does not exist.
	ErrParentCategoryNotFound = errors.New("parent category not found")

	// ErrCategoryNameRequired is returned when the category name is empty.
	ErrCategoryNameRequired = errors.New("category name is required")

	// ErrCategoryNameTooLong is returned when the category name exceeds the maximum length.
	ErrCategoryNameTooLong = errors.New("category name too long")

	// ErrInvalidCategoryType is returned when the category type is invalid.
	ErrInvalidCategoryType = errors.New("invalid category type")

	// ErrParentDifferentBook is returned when the parent belongs to a different book.
	ErrParentDifferentBook = errors.New("parent category must belong to the same book")

	// ErrCategoryTooDeep is returned when nesting under a category that already has a parent.
	ErrCategoryTooDeep = errors.New("categories can only be nested two levels deep")

	// ErrCategorySelfParent is returned when a category is assigned as its own parent.
	ErrCategorySelfParent = errors.New("category cannot be its own parent")

	// ErrCategoryHasChildren is returned when assigning a parent to a category that
	// already has children of its own.
	ErrCategoryHasChildren = errors.New("category with children cannot be nested under a parent")

	// ErrCategoryChildrenExist is returned when deleting a category that still has children.
	ErrCategoryChildrenExist = errors.New("category has child categories")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	// Resource not found errors (01XXXX)
	ErrCodeCategoryNotFound       CategoryErrorCode = "CAT-010001"
	ErrCodeParentCategoryNotFound CategoryErrorCode = "CAT-010002"

	// Validation errors (02XXXX)
	ErrCodeCategoryNameRequired  CategoryErrorCode = "CAT-020001"
	ErrCodeCategoryNameTooLong   CategoryErrorCode = "CAT-020002"
	ErrCodeInvalidCategoryType   CategoryErrorCode = "CAT-020003"
	ErrCodeMissingCategoryFields CategoryErrorCode = "CAT-020004"

	// Hierarchy errors (05XXXX)
	ErrCodeParentDifferentBook CategoryErrorCode = "CAT-050001"
	ErrCodeCategoryTooDeep     CategoryErrorCode = "CAT-050002"
	ErrCodeCategorySelfParent  CategoryErrorCode = "CAT-050003"
	ErrCodeCategoryHasChildren CategoryErrorCode = "CAT-050004"

	// Precondition errors (06XXXX)
	ErrCodeCategoryChildrenExist CategoryErrorCode = "CAT-060001"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
