// Package team contains team-related use cases.
package team

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/domain/entity"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
)

const (
	// MaxTeamNameLength is the maximum allowed length for team names.
	MaxTeamNameLength = 100
)

// CreateTeamInput represents the input for team creation.
type CreateTeamInput struct {
	Name   string
	UserID uuid.UUID
}

// CreateTeamOutput represents the output of team creation.
type CreateTeamOutput struct {
	Team    *entity.Team
	Members []*entity.TeamMember
}

// CreateTeamUseCase handles team creation logic.
type CreateTeamUseCase struct {
	teamRepo adapter.TeamRepository
	userRepo adapter.UserRepository
}

// NewCreateTeamUseCase creates a new CreateTeamUseCase instance.
func NewCreateTeamUseCase(teamRepo adapter.TeamRepository, userRepo adapter.UserRepository) *CreateTeamUseCase {
	return &CreateTeamUseCase{
		teamRepo: teamRepo,
		userRepo: userRepo,
	}
}

// Execute performs the team creation. The creator becomes the team's first
// admin member.
func (uc *CreateTeamUseCase) Execute(ctx context.Context, input CreateTeamInput) (*CreateTeamOutput, error) {
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

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	team := entity.NewTeam(input.Name, input.UserID)

	if err := uc.teamRepo.CreateTeam(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	member := entity.NewTeamMember(team.ID, input.UserID, entity.RoleAdmin)
	member.UserName = user.Name
	member.UserEmail = user.Email

	if err := uc.teamRepo.CreateMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to add creator as member: %w", err)
	}

	return &CreateTeamOutput{
		Team:    team,
		Members: []*entity.TeamMember{member},
	}, nil
}
