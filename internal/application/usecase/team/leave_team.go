package team

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	"github.com/ledgerbook/backend/internal/domain/entity"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
)

// LeaveTeamInput represents the input for leaving a team.
type LeaveTeamInput struct {
	TeamID uuid.UUID
	Actor  authz.Actor
}

// LeaveTeamUseCase handles a member removing their own membership.
type LeaveTeamUseCase struct {
	teamRepo adapter.TeamRepository
}

// NewLeaveTeamUseCase creates a new LeaveTeamUseCase instance.
func NewLeaveTeamUseCase(teamRepo adapter.TeamRepository) *LeaveTeamUseCase {
	return &LeaveTeamUseCase{teamRepo: teamRepo}
}

// Execute removes the caller's own membership. The last admin cannot leave;
// they must promote another admin or delete the team instead.
func (uc *LeaveTeamUseCase) Execute(ctx context.Context, input LeaveTeamInput) error {
	team, err := uc.teamRepo.FindTeamByID(ctx, input.TeamID)
	if err != nil {
		return fmt.Errorf("failed to find team: %w", err)
	}
	if team == nil {
		return notFound()
	}

	member, err := uc.teamRepo.FindMemberByTeamAndUser(ctx, input.TeamID, input.Actor.UserID)
	if err != nil {
		return fmt.Errorf("failed to find membership: %w", err)
	}
	if member == nil {
		return notFound()
	}

	if member.Role == entity.RoleAdmin {
		admins, err := uc.teamRepo.CountAdminsByTeamID(ctx, input.TeamID)
		if err != nil {
			return fmt.Errorf("failed to count admins: %w", err)
		}
		if admins <= 1 {
			return domainerror.NewTeamError(
				domainerror.ErrCodeLastAdmin,
				"cannot leave as the last admin of the team",
				domainerror.ErrLastAdmin,
			)
		}
	}

	if err := uc.teamRepo.DeleteMember(ctx, member.ID); err != nil {
		return fmt.Errorf("failed to remove membership: %w", err)
	}

	return nil
}
