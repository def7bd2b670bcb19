// Package error defines domain-specific errors for the LedgerBook application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTransactionCategoryWrongBook is returned when the referenced category
	// belongs to a different book than the transaction's account.
	ErrTransactionCategoryWrongBook = errors.New("category must belong to the same book")

	// ErrTransactionCategoryNotFound is returned when the referenced category does not exist.
	ErrTransactionCategoryNotFound = errors.New("category not found")

	// ErrInvalidTransactionAmount is returned when the amount does not parse as a decimal.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrInvalidTransactionDate is returned when the date does not parse.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Resource not found errors (01XXXX)
	ErrCodeTransactionNotFound         TransactionErrorCode = "TXN-010001"
	ErrCodeTransactionCategoryNotFound TransactionErrorCode = "TXN-010002"

	// Validation errors (02XXXX)
	ErrCodeInvalidTransactionAmount     TransactionErrorCode = "TXN-020001"
	ErrCodeInvalidTransactionDate       TransactionErrorCode = "TXN-020002"
	ErrCodeTransactionCategoryWrongBook TransactionErrorCode = "TXN-020003"
	ErrCodeMissingTransactionFields     TransactionErrorCode = "TXN-020004"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
