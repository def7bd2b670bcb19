package team

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
)

// SoftDeleteTeamInput represents the input for soft-deleting a team.
type SoftDeleteTeamInput struct {
	TeamID uuid.UUID
	Actor  authz.Actor
}

// SoftDeleteTeamUseCase handles marking a team as deleted.
type SoftDeleteTeamUseCase struct {
	teamRepo adapter.TeamRepository
	gate     *authz.Gate
}

// NewSoftDeleteTeamUseCase creates a new SoftDeleteTeamUseCase instance.
func NewSoftDeleteTeamUseCase(teamRepo adapter.TeamRepository, gate *authz.Gate) *SoftDeleteTeamUseCase {
	return &SoftDeleteTeamUseCase{
		teamRepo: teamRepo,
		gate:     gate,
	}
}

// Execute soft-deletes the team. Requires the admin role or superadmin.
// Deleting an already soft-deleted or missing team reports not-found rather
// than succeeding, so a double delete is never silently absorbed.
func (uc *SoftDeleteTeamUseCase) Execute(ctx context.Context, input SoftDeleteTeamInput) error {
	if !input.Actor.Superadmin {
		decision, err := uc.gate.CanAdmin(ctx, input.TeamID, input.Actor)
		if err != nil {
			return err
		}
		if !decision.Allowed {
			return authz.Denied(decision)
		}
	}

	deleted, err := uc.teamRepo.SoftDeleteTeam(ctx, input.TeamID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to soft-delete team: %w", err)
	}
	if !deleted {
		return notFound()
	}

	return nil
}
