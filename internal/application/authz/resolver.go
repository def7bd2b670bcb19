// Package authz implements team-scoped role resolution and permission
// decisions. It is the single chokepoint every handler consults before
// touching team-owned data.
package authz

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/domain/entity"
)

// MembershipReader is the slice of the team repository the resolver needs.
type MembershipReader interface {
	// FindTeamByID retrieves an active team by its ID.
	FindTeamByID(ctx context.Context, id uuid.UUID) (*entity.Team, error)

	// FindMemberByTeamAndUser retrieves a membership row by team and user ID.
	FindMemberByTeamAndUser(ctx context.Context, teamID, userID uuid.UUID) (*entity.TeamMember, error)
}

// RoleResolver resolves the effective role a user holds on a team.
type RoleResolver struct {
	teams MembershipReader
}

// NewRoleResolver creates a new RoleResolver instance.
func NewRoleResolver(teams MembershipReader) *RoleResolver {
	return &RoleResolver{teams: teams}
}

// RoleOf returns the effective role of userID on teamID, or RoleNone when the
// team does not exist, is soft-deleted, or holds no membership row for the
// user. Soft-deleting a team revokes effective access for everyone even while
// the membership rows remain stored; superadmin status never yields a role by
// itself.
func (r *RoleResolver) RoleOf(ctx context.Context, teamID, userID uuid.UUID) (entity.Role, error) {
	team, err := r.teams.FindTeamByID(ctx, teamID)
	if err != nil {
		return entity.RoleNone, fmt.Errorf("failed to find team: %w", err)
	}
	if team == nil || team.Lifecycle.IsSoftDeleted() {
		return entity.RoleNone, nil
	}

	member, err := r.teams.FindMemberByTeamAndUser(ctx, teamID, userID)
	if err != nil {
		return entity.RoleNone, fmt.Errorf("failed to find membership: %w", err)
	}
	if member == nil {
		return entity.RoleNone, nil
	}

	return member.Role, nil
}
