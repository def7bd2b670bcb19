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

// ChangeMemberRoleInput represents the input for changing a member's role.
type ChangeMemberRoleInput struct {
	TeamID   uuid.UUID
	MemberID uuid.UUID
	NewRole  entity.Role
	Actor    authz.Actor
}

// ChangeMemberRoleOutput represents the output of changing a member's role.
type ChangeMemberRoleOutput struct {
	Member *entity.TeamMember
}

// ChangeMemberRoleUseCase handles role changes within a team.
type ChangeMemberRoleUseCase struct {
	teamRepo adapter.TeamRepository
	gate     *authz.Gate
}

// NewChangeMemberRoleUseCase creates a new ChangeMemberRoleUseCase instance.
func NewChangeMemberRoleUseCase(teamRepo adapter.TeamRepository, gate *authz.Gate) *ChangeMemberRoleUseCase {
	return &ChangeMemberRoleUseCase{
		teamRepo: teamRepo,
		gate:     gate,
	}
}

// Execute changes the member's role. Demoting the only admin conflicts
// unless the actor is a superadmin.
func (uc *ChangeMemberRoleUseCase) Execute(ctx context.Context, input ChangeMemberRoleInput) (*ChangeMemberRoleOutput, error) {
	if !input.NewRole.IsValid() {
		return nil, domainerror.NewTeamError(
			domainerror.ErrCodeInvalidRole,
			"invalid member role",
			domainerror.ErrInvalidRole,
		)
	}

	if err := authorizeMembershipChange(ctx, uc.teamRepo, uc.gate, input.TeamID, input.Actor); err != nil {
		return nil, err
	}

	member, err := uc.teamRepo.FindMemberByID(ctx, input.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	if member == nil || member.TeamID != input.TeamID {
		return nil, domainerror.NewTeamError(
			domainerror.ErrCodeMemberNotFound,
			"member not found",
			domainerror.ErrMemberNotFound,
		)
	}

	if member.Role == input.NewRole {
		return &ChangeMemberRoleOutput{Member: member}, nil
	}

	if member.Role == entity.RoleAdmin && input.NewRole != entity.RoleAdmin {
		if err := guardLastAdmin(ctx, uc.teamRepo, input.TeamID, input.Actor); err != nil {
			return nil, err
		}
	}

	member.Role = input.NewRole
	if err := uc.teamRepo.UpdateMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	return &ChangeMemberRoleOutput{Member: member}, nil
}
