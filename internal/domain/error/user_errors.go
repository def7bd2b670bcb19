// Package error defines domain-specific errors for the LedgerBook application.
package error

import "errors"

// User administration domain errors.
var (
	// ErrUserAlreadyEnabled is returned when enabling a user that is already active.
	ErrUserAlreadyEnabled = errors.New("user is already enabled")

	// ErrUserAlreadyDisabled is returned when disabling a user that is already inactive.
	ErrUserAlreadyDisabled = errors.New("user is already disabled")
)

// UserErrorCode defines error codes for user administration errors.
// Format: USR-XXYYYY where XX is category and YYYY is specific error.
type UserErrorCode string

const (
	// Resource not found errors (01XXXX)
	ErrCodeAdminUserNotFound UserErrorCode = "USR-010001"

	// Invalid state errors (02XXXX)
	ErrCodeUserAlreadyEnabled  UserErrorCode = "USR-020001"
	ErrCodeUserAlreadyDisabled UserErrorCode = "USR-020002"
)

// UserError represents a user administration error with code and message.
type UserError struct {
	Code    UserErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new UserError with the given code and message.
func NewUserError(code UserErrorCode, message string, err error) *UserError {
	return &UserError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
