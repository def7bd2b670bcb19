package team

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/domain/entity"
)

// ListTeamsInput represents the input for listing a user's teams.
type ListTeamsInput struct {
	UserID uuid.UUID
}

// ListTeamsOutput represents the output of listing a user's teams.
type ListTeamsOutput struct {
	Teams []*entity.TeamListItem
}

// ListTeamsUseCase handles listing the active teams a user belongs to.
type ListTeamsUseCase struct {
	teamRepo adapter.TeamRepository
}

// NewListTeamsUseCase creates a new ListTeamsUseCase instance.
func NewListTeamsUseCase(teamRepo adapter.TeamRepository) *ListTeamsUseCase {
	return &ListTeamsUseCase{teamRepo: teamRepo}
}

// Execute returns the active teams the user is a member of. Soft-deleted
// teams never appear here even when membership rows remain stored.
func (uc *ListTeamsUseCase) Execute(ctx context.Context, input ListTeamsInput) (*ListTeamsOutput, error) {
	teams, err := uc.teamRepo.FindTeamsByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	return &ListTeamsOutput{Teams: teams}, nil
}
