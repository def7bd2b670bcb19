package team

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/domain/entity"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
)

// AcceptInviteInput represents the input for accepting an invitation.
type AcceptInviteInput struct {
	Token  string
	UserID uuid.UUID
}

// AcceptInviteOutput represents the output of accepting an invitation.
type AcceptInviteOutput struct {
	Member *entity.TeamMember
	Team   *entity.Team
}

// AcceptInviteUseCase handles redeeming an invite token.
type AcceptInviteUseCase struct {
	teamRepo adapter.TeamRepository
	userRepo adapter.UserRepository
}

// NewAcceptInviteUseCase creates a new AcceptInviteUseCase instance.
func NewAcceptInviteUseCase(teamRepo adapter.TeamRepository, userRepo adapter.UserRepository) *AcceptInviteUseCase {
	return &AcceptInviteUseCase{
		teamRepo: teamRepo,
		userRepo: userRepo,
	}
}

// Execute redeems the invite for the calling user. The caller's account
// email must match the invited address, the invite must still be pending and
// unexpired, and the team must still be active.
func (uc *AcceptInviteUseCase) Execute(ctx context.Context, input AcceptInviteInput) (*AcceptInviteOutput, error) {
	invite, err := uc.teamRepo.FindInviteByToken(ctx, input.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to find invite: %w", err)
	}
	if invite == nil || invite.Status != entity.InviteStatusPending {
		return nil, domainerror.NewTeamError(
			domainerror.ErrCodeInviteNotFound,
			"invite not found",
			domainerror.ErrInviteNotFound,
		)
	}

	if invite.IsExpired() {
		invite.Status = entity.InviteStatusExpired
		if err := uc.teamRepo.UpdateInvite(ctx, invite); err != nil {
			return nil, fmt.Errorf("failed to expire invite: %w", err)
		}
		return nil, domainerror.NewTeamError(
			domainerror.ErrCodeInviteExpired,
			"invite has expired",
			domainerror.ErrInviteExpired,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil || !strings.EqualFold(user.Email, invite.Email) {
		return nil, domainerror.NewTeamError(
			domainerror.ErrCodeInviteNotFound,
			"invite not found",
			domainerror.ErrInviteNotFound,
		)
	}

	team, err := uc.teamRepo.FindTeamByID(ctx, invite.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	if team == nil {
		return nil, notFound()
	}

	existing, err := uc.teamRepo.FindMemberByTeamAndUser(ctx, invite.TeamID, input.UserID)
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

	member := entity.NewTeamMember(invite.TeamID, input.UserID, invite.Role)
	member.UserName = user.Name
	member.UserEmail = user.Email

	if err := uc.teamRepo.CreateMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	invite.Status = entity.InviteStatusAccepted
	if err := uc.teamRepo.UpdateInvite(ctx, invite); err != nil {
		return nil, fmt.Errorf("failed to mark invite accepted: %w", err)
	}

	return &AcceptInviteOutput{Member: member, Team: team}, nil
}
