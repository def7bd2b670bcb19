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

// GetTeamInput represents the input for fetching a team.
type GetTeamInput struct {
	TeamID uuid.UUID
	Actor  authz.Actor
}

// GetTeamOutput represents the output of fetching a team.
type GetTeamOutput struct {
	Team    *entity.Team
	Members []*entity.TeamMember
}

// GetTeamUseCase handles fetching a single team with its members.
type GetTeamUseCase struct {
	teamRepo adapter.TeamRepository
	gate     *authz.Gate
}

// NewGetTeamUseCase creates a new GetTeamUseCase instance.
func NewGetTeamUseCase(teamRepo adapter.TeamRepository, gate *authz.Gate) *GetTeamUseCase {
	return &GetTeamUseCase{
		teamRepo: teamRepo,
		gate:     gate,
	}
}

// Execute fetches the team. Members see active teams only; a soft-deleted
// team reads as not-found for them. Superadmins fetch by ID regardless of
// lifecycle state and see the deletion timestamp.
func (uc *GetTeamUseCase) Execute(ctx context.Context, input GetTeamInput) (*GetTeamOutput, error) {
	if input.Actor.Superadmin {
		team, err := uc.teamRepo.FindTeamByIDUnscoped(ctx, input.TeamID)
		if err != nil {
			return nil, fmt.Errorf("failed to find team: %w", err)
		}
		if team == nil {
			return nil, notFound()
		}
		return uc.withMembers(ctx, team)
	}

	decision, err := uc.gate.CanRead(ctx, input.TeamID, input.Actor)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		// Hidden and missing teams are indistinguishable to outsiders.
		return nil, notFound()
	}

	team, err := uc.teamRepo.FindTeamByID(ctx, input.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	if team == nil {
		return nil, notFound()
	}

	return uc.withMembers(ctx, team)
}

func (uc *GetTeamUseCase) withMembers(ctx context.Context, team *entity.Team) (*GetTeamOutput, error) {
	members, err := uc.teamRepo.FindMembersByTeamID(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	return &GetTeamOutput{Team: team, Members: members}, nil
}

func notFound() error {
	return domainerror.NewTeamError(
		domainerror.ErrCodeTeamNotFound,
		"team not found",
		domainerror.ErrTeamNotFound,
	)
}
