// Package error defines domain-specific errors for the LedgerBook application.
package error

import "errors"

// Team domain errors.
var (
	// ErrTeamNotFound is returned when a team is not found or hidden by a soft delete.
	ErrTeamNotFound = errors.New("team not found")

	// ErrTeamNameRequired is returned when the team name is empty.
	ErrTeamNameRequired = errors.New("team name is required")

	// ErrTeamNameTooLong is returned when the team name exceeds the maximum length.
	ErrTeamNameTooLong = errors.New("team name too long")

	// ErrTeamNotDeleted is returned when restoring a team that is currently active.
	ErrTeamNotDeleted = errors.New("team is not deleted")

	// ErrTeamNotSoftDeleted is returned when permanently deleting an active team.
	ErrTeamNotSoftDeleted = errors.New("team must be soft-deleted first")

	// ErrTeamDeletedMembership is returned when managing members of a soft-deleted team.
	ErrTeamDeletedMembership = errors.New("cannot manage members of deleted teams, restore first")

	// ErrMemberNotFound is returned when a member is not found in the team.
	ErrMemberNotFound = errors.New("member not found")

	// ErrMemberAlreadyExists is returned when a user already holds a membership on the team.
	ErrMemberAlreadyExists = errors.New("user already has access to this team")

	// ErrLastAdmin is returned when removing or demoting the only admin of a team.
	ErrLastAdmin = errors.New("last admin")

	// ErrInvalidRole is returned when an invalid member role is provided.
	ErrInvalidRole = errors.New("invalid member role")

	// ErrInviteNotFound is returned when an invitation is not found.
	ErrInviteNotFound = errors.New("invite not found")

	// ErrInviteExpired is returned when an invitation has expired.
	ErrInviteExpired = errors.New("invite has expired")

	// ErrInviteAlreadyExists is returned when a pending invitation already exists for the email.
	ErrInviteAlreadyExists = errors.New("invite already exists for this email")

	// ErrCannotInviteSelf is returned when a user tries to invite themselves.
	ErrCannotInviteSelf = errors.New("cannot invite yourself")

	// ErrInviteeNotRegistered is returned when the invited email is not a registered user.
	ErrInviteeNotRegistered = errors.New("user is not registered on the platform")
)

// TeamErrorCode defines error codes for team errors.
// Format: TEAM-XXYYYY where XX is category and YYYY is specific error.
type TeamErrorCode string

const (
	// Resource not found errors (01XXXX)
	ErrCodeTeamNotFound   TeamErrorCode = "TEAM-010001"
	ErrCodeMemberNotFound TeamErrorCode = "TEAM-010002"
	ErrCodeInviteNotFound TeamErrorCode = "TEAM-010003"

	// Validation errors (02XXXX)
	ErrCodeTeamNameRequired  TeamErrorCode = "TEAM-020001"
	ErrCodeTeamNameTooLong   TeamErrorCode = "TEAM-020002"
	ErrCodeInvalidRole       TeamErrorCode = "TEAM-020003"
	ErrCodeMissingTeamFields TeamErrorCode = "TEAM-020004"

	// Conflict errors (03XXXX)
	ErrCodeMemberAlreadyExists TeamErrorCode = "TEAM-030001"
	ErrCodeLastAdmin           TeamErrorCode = "TEAM-030002"
	ErrCodeInviteAlreadyExists TeamErrorCode = "TEAM-030003"

	// Invalid lifecycle state errors (04XXXX)
	ErrCodeTeamNotDeleted        TeamErrorCode = "TEAM-040001"
	ErrCodeTeamNotSoftDeleted    TeamErrorCode = "TEAM-040002"
	ErrCodeTeamDeletedMembership TeamErrorCode = "TEAM-040003"

	// Invite errors (05XXXX)
	ErrCodeInviteExpired        TeamErrorCode = "TEAM-050001"
	ErrCodeCannotInviteSelf     TeamErrorCode = "TEAM-050002"
	ErrCodeInviteeNotRegistered TeamErrorCode = "TEAM-050003"
)

// TeamError represents a team error with code and message.
type TeamError struct {
	Code    TeamErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TeamError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TeamError) Unwrap() error {
	return e.Err
}

// NewTeamError creates a new TeamError with the given code and message.
func NewTeamError(code TeamErrorCode, message string, err error) *TeamError {
	return &TeamError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
