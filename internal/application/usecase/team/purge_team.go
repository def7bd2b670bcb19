package team

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
)

// PurgeTeamInput represents the input for permanently deleting a team.
type PurgeTeamInput struct {
	TeamID uuid.UUID
	Actor  authz.Actor
}

// PurgeTeamUseCase handles the irreversible removal of a team and everything
// under it.
type PurgeTeamUseCase struct {
	teamRepo adapter.TeamRepository
}

// NewPurgeTeamUseCase creates a new PurgeTeamUseCase instance.
func NewPurgeTeamUseCase(teamRepo adapter.TeamRepository) *PurgeTeamUseCase {
	return &PurgeTeamUseCase{teamRepo: teamRepo}
}

// Execute permanently deletes the team and cascades through its books,
// accounts, categories, transactions, members, and invites. Superadmin only,
// and only from the soft-deleted state.
func (uc *PurgeTeamUseCase) Execute(ctx context.Context, input PurgeTeamInput) error {
	if err := authz.RequireSuperadmin(input.Actor); err != nil {
		return err
	}

	team, err := uc.teamRepo.FindTeamByIDUnscoped(ctx, input.TeamID)
	if err != nil {
		return fmt.Errorf("failed to find team: %w", err)
	}
	if team == nil {
		return notFound()
	}

	if team.Lifecycle.IsActive() {
		return domainerror.NewTeamError(
			domainerror.ErrCodeTeamNotSoftDeleted,
			"team must be soft-deleted first",
			domainerror.ErrTeamNotSoftDeleted,
		)
	}

	if err := uc.teamRepo.PurgeTeam(ctx, input.TeamID); err != nil {
		return fmt.Errorf("failed to purge team: %w", err)
	}

	return nil
}
