// Package error defines domain-specific errors for the LedgerBook application.
package error

import "errors"

// Account domain errors.
var (
	// ErrAccountNotFound is returned when an account is not found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountNameRequired is returned when the account name is empty.
	ErrAccountNameRequired = errors.New("account name is required")

	// ErrInvalidAccountType is returned when the account type is not debit or credit.
	ErrInvalidAccountType = errors.New("invalid account type")

	// ErrAccountHasTransactions is returned when deleting an account that still
	// has transactions referencing it.
	ErrAccountHasTransactions = errors.New("account has transactions")

	// ErrInvalidDateFormat is returned when a balance cutoff date does not parse.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// AccountErrorCode defines error codes for account errors.
// Format: ACCT-XXYYYY where XX is category and YYYY is specific error.
type AccountErrorCode string

const (
	// Resource not found errors (01XXXX)
	ErrCodeAccountNotFound AccountErrorCode = "ACCT-010001"

	// Validation errors (02XXXX)
	ErrCodeAccountNameRequired  AccountErrorCode = "ACCT-020001"
	ErrCodeInvalidAccountType   AccountErrorCode = "ACCT-020002"
	ErrCodeInvalidDateFormat    AccountErrorCode = "ACCT-020003"
	ErrCodeMissingAccountFields AccountErrorCode = "ACCT-020004"

	// Precondition errors (06XXXX)
	ErrCodeAccountHasTransactions AccountErrorCode = "ACCT-060001"
)

// AccountError represents an account error with code and message.
type AccountError struct {
	Code    AccountErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AccountError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AccountError) Unwrap() error {
	return e.Err
}

// NewAccountError creates a new AccountError with the given code and message.
func NewAccountError(code AccountErrorCode, message string, err error) *AccountError {
	return &AccountError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
