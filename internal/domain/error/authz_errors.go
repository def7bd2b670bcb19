// Package error defines domain-specific errors for the LedgerBook application.
package error

// Authorization denial reasons. These are the human-readable strings the
// permission gate attaches to deny decisions; controllers surface them
// verbatim in 403 responses.
const (
	// ReasonAccessDenied is used when the actor has no membership on the team.
	ReasonAccessDenied = "access denied"

	// ReasonWriteRequired is used when a viewer attempts a write operation.
	ReasonWriteRequired = "write access required"

	// ReasonAdminRequired is used when a non-admin member attempts an admin operation.
	ReasonAdminRequired = "admin privileges required"

	// ReasonSuperadminRequired is used for global operations reserved to superadmins.
	ReasonSuperadminRequired = "superadmin privileges required"
)

// AuthzError represents an authorization denial carrying the gate's reason.
type AuthzError struct {
	Reason string
}

// Error implements the error interface.
func (e *AuthzError) Error() string {
	return e.Reason
}

// NewAuthzError creates an AuthzError with the given denial reason.
func NewAuthzError(reason string) *AuthzError {
	return &AuthzError{Reason: reason}
}
