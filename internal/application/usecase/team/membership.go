package team

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
)

// authorizeMembershipChange gates add/remove/change-role operations.
//
// Active teams require the admin role. Soft-deleted teams block membership
// management for everyone except superadmins, who keep the override so they
// can clean up wedged teams; ordinary members of a deleted team get a state
// error telling them to restore first, and outsiders get not-found.
func authorizeMembershipChange(ctx context.Context, teamRepo adapter.TeamRepository, gate *authz.Gate, teamID uuid.UUID, actor authz.Actor) error {
	team, err := teamRepo.FindTeamByIDUnscoped(ctx, teamID)
	if err != nil {
		return fmt.Errorf("failed to find team: %w", err)
	}
	if team == nil {
		return notFound()
	}

	if actor.Superadmin {
		return nil
	}

	if team.Lifecycle.IsSoftDeleted() {
		member, err := teamRepo.FindMemberByTeamAndUser(ctx, teamID, actor.UserID)
		if err != nil {
			return fmt.Errorf("failed to check membership: %w", err)
		}
		if member == nil {
			return notFound()
		}
		return domainerror.NewTeamError(
			domainerror.ErrCodeTeamDeletedMembership,
			"cannot manage members of deleted teams, restore first",
			domainerror.ErrTeamDeletedMembership,
		)
	}

	decision, err := gate.CanAdmin(ctx, teamID, actor)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		return authz.Denied(decision)
	}

	return nil
}

// guardLastAdmin rejects removals and demotions that would leave an active
// team with no admin. Superadmin-initiated changes skip the guard.
func guardLastAdmin(ctx context.Context, teamRepo adapter.TeamRepository, teamID uuid.UUID, actor authz.Actor) error {
	if actor.Superadmin {
		return nil
	}

	admins, err := teamRepo.CountAdminsByTeamID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if admins <= 1 {
		return domainerror.NewTeamError(
			domainerror.ErrCodeLastAdmin,
			"cannot remove the last admin of the team",
			domainerror.ErrLastAdmin,
		)
	}

	return nil
}
