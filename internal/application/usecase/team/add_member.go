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

// AddMemberInput represents the input for adding a member to a team.
type AddMemberInput struct {
	TeamID uuid.UUID
	UserID uuid.UUID
	Role   entity.Role
	Actor  authz.Actor
}

// AddMemberOutput represents the output of adding a member.
type AddMemberOutput struct {
	Member *entity.TeamMember
}

// AddMemberUseCase handles granting a user a role on a team.
type AddMemberUseCase struct {
	teamRepo adapter.TeamRepository
	userRepo adapter.UserRepository
	gate     *authz.Gate
}

// NewAddMemberUseCase creates a new AddMemberUseCase instance.
func NewAddMemberUseCase(teamRepo adapter.TeamRepository, userRepo adapter.UserRepository, gate *authz.Gate) *AddMemberUseCase {
	return &AddMemberUseCase{
		teamRepo: teamRepo,
		userRepo: userRepo,
		gate:     gate,
	}
}

// Execute adds the user as a member with the given role. A user holds at
// most one membership per team; a second grant conflicts.
func (uc *AddMemberUseCase) Execute(ctx context.Context, input AddMemberInput) (*AddMemberOutput, error) {
	if !input.Role.IsValid() {
		return nil, domainerror.NewTeamError(
			domainerror.ErrCodeInvalidRole,
			"invalid member role",
			domainerror.ErrInvalidRole,
		)
	}

	if err := authorizeMembershipChange(ctx, uc.teamRepo, uc.gate, input.TeamID, input.Actor); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domainerror.NewTeamError(
			domainerror.ErrCodeMemberNotFound,
			"user not found",
			domainerror.ErrMemberNotFound,
		)
	}

	existing, err := uc.teamRepo.FindMemberByTeamAndUser(ctx, input.TeamID, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing membership: %w", err)
	}
	if existing != nil {
		return nil, domainerror.NewTeamError(
			domainerror.ErrCodeMemberAlreadyExists,
			"user already has access to this team",
			domainerror.ErrMemberAlreadyExists,
		)
	}

	member := entity.NewTeamMember(input.TeamID, input.UserID, input.Role)
	member.UserName = user.Name
	member.UserEmail = user.Email

	if err := uc.teamRepo.CreateMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return &AddMemberOutput{Member: member}, nil
}
