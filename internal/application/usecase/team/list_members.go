package team

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	"github.com/ledgerbook/backend/internal/domain/entity"
)

// ListMembersInput represents the input for listing a team's members.
type ListMembersInput struct {
	TeamID uuid.UUID
	Actor  authz.Actor
}

// ListMembersOutput represents the output of listing a team's members.
type ListMembersOutput struct {
	Members []*entity.TeamMember
}

// ListMembersUseCase handles listing the members of a team.
type ListMembersUseCase struct {
	teamRepo adapter.TeamRepository
	gate     *authz.Gate
}

// NewListMembersUseCase creates a new ListMembersUseCase instance.
func NewListMembersUseCase(teamRepo adapter.TeamRepository, gate *authz.Gate) *ListMembersUseCase {
	return &ListMembersUseCase{
		teamRepo: teamRepo,
		gate:     gate,
	}
}

// Execute lists the members. Any role on the team suffices; outsiders get
// not-found rather than a denial so team existence never leaks.
func (uc *ListMembersUseCase) Execute(ctx context.Context, input ListMembersInput) (*ListMembersOutput, error) {
	decision, err := uc.gate.CanRead(ctx, input.TeamID, input.Actor)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, notFound()
	}

	members, err := uc.teamRepo.FindMembersByTeamID(ctx, input.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	return &ListMembersOutput{Members: members}, nil
}
