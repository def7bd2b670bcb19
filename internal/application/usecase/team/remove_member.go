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

// RemoveMemberInput represents the input for removing a member from a team.
type RemoveMemberInput struct {
	TeamID   uuid.UUID
	MemberID uuid.UUID
	Actor    authz.Actor
}

// RemoveMemberUseCase handles removing members from a team.
type RemoveMemberUseCase struct {
	teamRepo adapter.TeamRepository
	gate     *authz.Gate
}

// NewRemoveMemberUseCase creates a new RemoveMemberUseCase instance.
func NewRemoveMemberUseCase(teamRepo adapter.TeamRepository, gate *authz.Gate) *RemoveMemberUseCase {
	return &RemoveMemberUseCase{
		teamRepo: teamRepo,
		gate:     gate,
	}
}

// Execute removes the member. Removing the only admin conflicts unless the
// actor is a superadmin, who may leave a team with zero admins for cleanup.
func (uc *RemoveMemberUseCase) Execute(ctx context.Context, input RemoveMemberInput) error {
	if err := authorizeMembershipChange(ctx, uc.teamRepo, uc.gate, input.TeamID, input.Actor); err != nil {
		return err
	}

	member, err := uc.teamRepo.FindMemberByID(ctx, input.MemberID)
	if err != nil {
		return fmt.Errorf("failed to find member: %w", err)
	}
	if member == nil || member.TeamID != input.TeamID {
		return domainerror.NewTeamError(
			domainerror.ErrCodeMemberNotFound,
			"member not found",
			domainerror.ErrMemberNotFound,
		)
	}

	if member.Role == entity.RoleAdmin {
		if err := guardLastAdmin(ctx, uc.teamRepo, input.TeamID, input.Actor); err != nil {
			return err
		}
	}

	if err := uc.teamRepo.DeleteMember(ctx, member.ID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}
