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

// UpdateTeamInput represents the input for renaming a team.
type UpdateTeamInput struct {
	TeamID uuid.UUID
	Name   string
	Actor  authz.Actor
}

// UpdateTeamOutput represents the output of renaming a team.
type UpdateTeamOutput struct {
	Team *entity.Team
}

// UpdateTeamUseCase handles team updates.
type UpdateTeamUseCase struct {
	teamRepo adapter.TeamRepository
	gate     *authz.Gate
}

// NewUpdateTeamUseCase creates a new UpdateTeamUseCase instance.
func NewUpdateTeamUseCase(teamRepo adapter.TeamRepository, gate *authz.Gate) *UpdateTeamUseCase {
	return &UpdateTeamUseCase{
		teamRepo: teamRepo,
		gate:     gate,
	}
}

// Execute renames the team. Requires the admin role.
func (uc *UpdateTeamUseCase) Execute(ctx context.Context, input UpdateTeamInput) (*UpdateTeamOutput, error) {
	if input.Name == "" {
		return nil, domainerror.NewTeamError(
			domainerror.ErrCodeTeamNameRequired,
			"team name is required",
			domainerror.ErrTeamNameRequired,
		)
	}
	if len(input.Name) > MaxTeamNameLength {
		return nil, domainerror.NewTeamError(
			domainerror.ErrCodeTeamNameTooLong,
			fmt.Sprintf("team name must not exceed %d characters", MaxTeamNameLength),
			domainerror.ErrTeamNameTooLong,
		)
	}

	decision, err := uc.gate.CanAdmin(ctx, input.TeamID, input.Actor)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, authz.Denied(decision)
	}

	team, err := uc.teamRepo.FindTeamByID(ctx, input.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	if team == nil {
		return nil, notFound()
	}

	team.Name = input.Name
	if err := uc.teamRepo.UpdateTeam(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	return &UpdateTeamOutput{Team: team}, nil
}
