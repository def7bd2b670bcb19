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

// RestoreTeamInput represents the input for restoring a soft-deleted team.
type RestoreTeamInput struct {
	TeamID uuid.UUID
	Actor  authz.Actor
}

// RestoreTeamUseCase handles bringing a soft-deleted team back to life.
type RestoreTeamUseCase struct {
	teamRepo adapter.TeamRepository
}

// NewRestoreTeamUseCase creates a new RestoreTeamUseCase instance.
func NewRestoreTeamUseCase(teamRepo adapter.TeamRepository) *RestoreTeamUseCase {
	return &RestoreTeamUseCase{teamRepo: teamRepo}
}

// Execute restores the team. The role that gated the soft-delete gates the
// restore: a stored admin membership row suffices even though the role
// resolver reports none while the team is deleted, and superadmin is always
// eligible. Restoring an active team fails with a "not deleted" state error.
func (uc *RestoreTeamUseCase) Execute(ctx context.Context, input RestoreTeamInput) error {
	team, err := uc.teamRepo.FindTeamByIDUnscoped(ctx, input.TeamID)
	if err != nil {
		return fmt.Errorf("failed to find team: %w", err)
	}
	if team == nil {
		return notFound()
	}

	if !input.Actor.Superadmin {
		member, err := uc.teamRepo.FindMemberByTeamAndUser(ctx, input.TeamID, input.Actor.UserID)
		if err != nil {
			return fmt.Errorf("failed to check membership: %w", err)
		}
		if member == nil {
			return notFound()
		}
		if member.Role != entity.RoleAdmin {
			return authz.Denied(authz.Decision{Reason: domainerror.ReasonAdminRequired})
		}
	}

	if team.Lifecycle.IsActive() {
		return domainerror.NewTeamError(
			domainerror.ErrCodeTeamNotDeleted,
			"team is not deleted",
			domainerror.ErrTeamNotDeleted,
		)
	}

	restored, err := uc.teamRepo.RestoreTeam(ctx, input.TeamID)
	if err != nil {
		return fmt.Errorf("failed to restore team: %w", err)
	}
	if !restored {
		return domainerror.NewTeamError(
			domainerror.ErrCodeTeamNotDeleted,
			"team is not deleted",
			domainerror.ErrTeamNotDeleted,
		)
	}

	return nil
}
