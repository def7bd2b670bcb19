// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/domain/valueobject"
)

// Role represents the role of a member in a team.
type Role string

const (
	// RoleNone means the user has no effective role on the team.
	RoleNone Role = ""

	RoleViewer       Role = "viewer"
	RoleCollaborator Role = "collaborator"
	RoleAdmin        Role = "admin"
)

// IsValid reports whether the role is one of the assignable membership roles.
func (r Role) IsValid() bool {
	return r == RoleViewer || r == RoleCollaborator || r == RoleAdmin
}

// InviteStatus represents the status of a team invitation.
type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusDeclined InviteStatus = "declined"
	InviteStatusExpired  InviteStatus = "expired"
)

// Team represents a tenant that owns books and holds user memberships.
type Team struct {
	ID        uuid.UUID
	Name      string
	CreatedBy uuid.UUID
	Lifecycle valueobject.Lifecycle
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTeam creates a new active Team entity.
func NewTeam(name string, createdBy uuid.UUID) *Team {
	now := time.Now().UTC()

	return &Team{
		ID:        uuid.New(),
		Name:      name,
		CreatedBy: createdBy,
		Lifecycle: valueobject.ActiveLifecycle(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TeamMember represents a (team, user, role) membership triple.
type TeamMember struct {
	ID       uuid.UUID
	TeamID   uuid.UUID
	UserID   uuid.UUID
	Role     Role
	JoinedAt time.Time
	// User information (populated when needed)
	UserName  string
	UserEmail string
}

// NewTeamMember creates a new TeamMember entity.
func NewTeamMember(teamID, userID uuid.UUID, role Role) *TeamMember {
	return &TeamMember{
		ID:       uuid.New(),
		TeamID:   teamID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now().UTC(),
	}
}

// TeamInvite represents an invitation to join a team with a given role.
type TeamInvite struct {
	ID        uuid.UUID
	TeamID    uuid.UUID
	Email     string
	Token     string
	Role      Role
	InvitedBy uuid.UUID
	Status    InviteStatus
	ExpiresAt time.Time
	CreatedAt time.Time
}

// NewTeamInvite creates a new pending TeamInvite entity.
func NewTeamInvite(teamID uuid.UUID, email, token string, role Role, invitedBy uuid.UUID, expiresAt time.Time) *TeamInvite {
	return &TeamInvite{
		ID:        uuid.New(),
		TeamID:    teamID,
		Email:     email,
		Token:     token,
		Role:      role,
		InvitedBy: invitedBy,
		Status:    InviteStatusPending,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
}

// IsExpired checks if the invitation has expired.
func (i *TeamInvite) IsExpired() bool {
	return time.Now().UTC().After(i.ExpiresAt)
}

// TeamListItem represents a team in a list view.
type TeamListItem struct {
	ID          uuid.UUID
	Name        string
	MemberCount int
	Role        Role
	CreatedAt   time.Time
}
