// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/domain/entity"
)

// TeamRepository defines the interface for team persistence operations.
//
// Finders come in two flavors: the plain variants see active teams only, the
// Unscoped variants also surface soft-deleted rows (superadmin and lifecycle
// paths). Lifecycle mutations are conditional updates so two concurrent
// requests cannot both observe the same pre-transition state.
type TeamRepository interface {
	// CreateTeam creates a new team in the database.
	CreateTeam(ctx context.Context, team *entity.Team) error

	// FindTeamByID retrieves an active team by its ID.
	FindTeamByID(ctx context.Context, id uuid.UUID) (*entity.Team, error)

	// FindTeamByIDUnscoped retrieves a team by its ID including soft-deleted rows.
	FindTeamByIDUnscoped(ctx context.Context, id uuid.UUID) (*entity.Team, error)

	// FindTeamsByUserID retrieves all active teams a user belongs to.
	FindTeamsByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.TeamListItem, error)

	// ListAllTeams retrieves every team, soft-deleted included.
	ListAllTeams(ctx context.Context) ([]*entity.Team, error)

	// UpdateTeam updates an existing team in the database.
	UpdateTeam(ctx context.Context, team *entity.Team) error

	// SoftDeleteTeam marks an active team as deleted at the given instant.
	// Returns false when the team was missing or already soft-deleted.
	SoftDeleteTeam(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)

	// RestoreTeam clears the deletion timestamp of a soft-deleted team.
	// Returns false when the team was missing or not soft-deleted.
	RestoreTeam(ctx context.Context, id uuid.UUID) (bool, error)

	// PurgeTeam permanently deletes a team and all of its descendants
	// (transactions, accounts, categories, books, members, invites) in a
	// single transaction, children before parents.
	PurgeTeam(ctx context.Context, id uuid.UUID) error

	// CreateMember adds a new member to a team.
	CreateMember(ctx context.Context, member *entity.TeamMember) error

	// FindMemberByID retrieves a team member by their membership ID.
	FindMemberByID(ctx context.Context, id uuid.UUID) (*entity.TeamMember, error)

	// FindMemberByTeamAndUser retrieves a membership row by team and user ID,
	// regardless of the team's lifecycle state.
	FindMemberByTeamAndUser(ctx context.Context, teamID, userID uuid.UUID) (*entity.TeamMember, error)

	// FindMembersByTeamID retrieves all members of a team.
	FindMembersByTeamID(ctx context.Context, teamID uuid.UUID) ([]*entity.TeamMember, error)

	// UpdateMember updates a team member.
	UpdateMember(ctx context.Context, member *entity.TeamMember) error

	// DeleteMember removes a member from a team.
	DeleteMember(ctx context.Context, id uuid.UUID) error

	// CountAdminsByTeamID counts the number of admin members in a team.
	CountAdminsByTeamID(ctx context.Context, teamID uuid.UUID) (int, error)

	// CreateInvite creates a new team invitation.
	CreateInvite(ctx context.Context, invite *entity.TeamInvite) error

	// FindInviteByToken retrieves an invitation by its token.
	FindInviteByToken(ctx context.Context, token string) (*entity.TeamInvite, error)

	// FindPendingInviteByTeamAndEmail retrieves a pending invite by team and email.
	FindPendingInviteByTeamAndEmail(ctx context.Context, teamID uuid.UUID, email string) (*entity.TeamInvite, error)

	// UpdateInvite updates an invitation.
	UpdateInvite(ctx context.Context, invite *entity.TeamInvite) error
}
