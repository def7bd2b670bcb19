package team

import (
	"context"
	"fmt"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	"github.com/ledgerbook/backend/internal/domain/entity"
)

// ListAllTeamsInput represents the input for the global team listing.
type ListAllTeamsInput struct {
	Actor authz.Actor
}

// ListAllTeamsOutput represents the output of the global team listing.
type ListAllTeamsOutput struct {
	Teams []*entity.Team
}

// ListAllTeamsUseCase lists every team, soft-deleted included. Reserved to
// superadmins.
type ListAllTeamsUseCase struct {
	teamRepo adapter.TeamRepository
}

// NewListAllTeamsUseCase creates a new ListAllTeamsUseCase instance.
func NewListAllTeamsUseCase(teamRepo adapter.TeamRepository) *ListAllTeamsUseCase {
	return &ListAllTeamsUseCase{teamRepo: teamRepo}
}

// Execute returns all teams regardless of lifecycle state.
func (uc *ListAllTeamsUseCase) Execute(ctx context.Context, input ListAllTeamsInput) (*ListAllTeamsOutput, error) {
	if err := authz.RequireSuperadmin(input.Actor); err != nil {
		return nil, err
	}

	teams, err := uc.teamRepo.ListAllTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list all teams: %w", err)
	}

	return &ListAllTeamsOutput{Teams: teams}, nil
}
