package authz

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/domain/entity"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
)

// Actor identifies the authenticated caller of an operation. It is threaded
// explicitly through every use case rather than kept as ambient state.
type Actor struct {
	UserID     uuid.UUID
	Superadmin bool
}

// Decision is the outcome of a permission check. Reason is only meaningful
// when Allowed is false; callers surface it verbatim in 403 responses.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Gate answers read/write/admin permission questions for team-scoped
// resources. None of its predicates honor the superadmin flag: superadmin is
// an operational privilege covering global listings and lifecycle overrides,
// never implicit access to a team's data.
type Gate struct {
	resolver *RoleResolver
}

// NewGate creates a new permission Gate instance.
func NewGate(resolver *RoleResolver) *Gate {
	return &Gate{resolver: resolver}
}

// CanRead reports whether the actor may read the team's data.
// Any membership role suffices.
func (g *Gate) CanRead(ctx context.Context, teamID uuid.UUID, actor Actor) (Decision, error) {
	role, err := g.resolver.RoleOf(ctx, teamID, actor.UserID)
	if err != nil {
		return Decision{}, err
	}
	if role == entity.RoleNone {
		return deny(domainerror.ReasonAccessDenied), nil
	}
	return allow(), nil
}

// CanWrite reports whether the actor may mutate the team's data.
// Collaborators and admins may; viewers are denied.
func (g *Gate) CanWrite(ctx context.Context, teamID uuid.UUID, actor Actor) (Decision, error) {
	role, err := g.resolver.RoleOf(ctx, teamID, actor.UserID)
	if err != nil {
		return Decision{}, err
	}
	switch role {
	case entity.RoleCollaborator, entity.RoleAdmin:
		return allow(), nil
	case entity.RoleViewer:
		return deny(domainerror.ReasonWriteRequired), nil
	default:
		return deny(domainerror.ReasonAccessDenied), nil
	}
}

// CanAdmin reports whether the actor may administer the team (membership and
// lifecycle). Only the admin role qualifies; the denial reason distinguishes
// an insufficient role from a missing membership.
func (g *Gate) CanAdmin(ctx context.Context, teamID uuid.UUID, actor Actor) (Decision, error) {
	role, err := g.resolver.RoleOf(ctx, teamID, actor.UserID)
	if err != nil {
		return Decision{}, err
	}
	switch role {
	case entity.RoleAdmin:
		return allow(), nil
	case entity.RoleViewer, entity.RoleCollaborator:
		return deny(domainerror.ReasonAdminRequired), nil
	default:
		return deny(domainerror.ReasonAccessDenied), nil
	}
}

// RequireSuperadmin returns an AuthzError unless the actor is a superadmin.
func RequireSuperadmin(actor Actor) error {
	if !actor.Superadmin {
		return domainerror.NewAuthzError(domainerror.ReasonSuperadminRequired)
	}
	return nil
}

// Denied converts a deny decision into the error surfaced to controllers.
func Denied(d Decision) error {
	return domainerror.NewAuthzError(d.Reason)
}
