// Package authz implements team-scoped role resolution and permission
// decisions.
package authz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/domain/entity"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
	"github.com/ledgerbook/backend/internal/domain/valueobject"
)

type fakeMembershipReader struct {
	teams   map[uuid.UUID]*entity.Team
	members map[uuid.UUID]map[uuid.UUID]entity.Role
}

func newFakeMembershipReader() *fakeMembershipReader {
	return &fakeMembershipReader{
		teams:   make(map[uuid.UUID]*entity.Team),
		members: make(map[uuid.UUID]map[uuid.UUID]entity.Role),
	}
}

func (f *fakeMembershipReader) addTeam(team *entity.Team) {
	f.teams[team.ID] = team
}

func (f *fakeMembershipReader) addMember(teamID, userID uuid.UUID, role entity.Role) {
	if f.members[teamID] == nil {
		f.members[teamID] = make(map[uuid.UUID]entity.Role)
	}
	f.members[teamID][userID] = role
}

func (f *fakeMembershipReader) FindTeamByID(_ context.Context, id uuid.UUID) (*entity.Team, error) {
	team, ok := f.teams[id]
	if !ok || team.Lifecycle.IsSoftDeleted() {
		return nil, nil
	}
	return team, nil
}

func (f *fakeMembershipReader) FindMemberByTeamAndUser(_ context.Context, teamID, userID uuid.UUID) (*entity.TeamMember, error) {
	role, ok := f.members[teamID][userID]
	if !ok {
		return nil, nil
	}
	return &entity.TeamMember{ID: uuid.New(), TeamID: teamID, UserID: userID, Role: role}, nil
}

func TestRoleResolver_RoleOf(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the stored role for a member of an active team", func(t *testing.T) {
		reader := newFakeMembershipReader()
		team := entity.NewTeam("Finance", uuid.New())
		user := uuid.New()
		reader.addTeam(team)
		reader.addMember(team.ID, user, entity.RoleCollaborator)

		resolver := NewRoleResolver(reader)
		role, err := resolver.RoleOf(ctx, team.ID, user)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if role != entity.RoleCollaborator {
			t.Errorf("expected role %s, got %s", entity.RoleCollaborator, role)
		}
	})

	t.Run("returns RoleNone when the team does not exist", func(t *testing.T) {
		resolver := NewRoleResolver(newFakeMembershipReader())
		role, err := resolver.RoleOf(ctx, uuid.New(), uuid.New())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if role != entity.RoleNone {
			t.Errorf("expected RoleNone, got %s", role)
		}
	})

	t.Run("returns RoleNone when the user is not a member", func(t *testing.T) {
		reader := newFakeMembershipReader()
		team := entity.NewTeam("Finance", uuid.New())
		reader.addTeam(team)

		resolver := NewRoleResolver(reader)
		role, err := resolver.RoleOf(ctx, team.ID, uuid.New())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if role != entity.RoleNone {
			t.Errorf("expected RoleNone, got %s", role)
		}
	})

	t.Run("returns RoleNone for members of a soft-deleted team", func(t *testing.T) {
		reader := newFakeMembershipReader()
		team := entity.NewTeam("Finance", uuid.New())
		team.Lifecycle = valueobject.SoftDeletedLifecycle(time.Now())
		user := uuid.New()
		reader.addTeam(team)
		reader.addMember(team.ID, user, entity.RoleAdmin)

		resolver := NewRoleResolver(reader)
		role, err := resolver.RoleOf(ctx, team.ID, user)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if role != entity.RoleNone {
			t.Errorf("expected RoleNone for soft-deleted team, got %s", role)
		}
	})
}

func TestGate_Permissions(t *testing.T) {
	ctx := context.Background()

	setup := func() (*Gate, *fakeMembershipReader, *entity.Team) {
		reader := newFakeMembershipReader()
		team := entity.NewTeam("Finance", uuid.New())
		reader.addTeam(team)
		return NewGate(NewRoleResolver(reader)), reader, team
	}

	t.Run("viewer can read but not write or admin", func(t *testing.T) {
		gate, reader, team := setup()
		user := uuid.New()
		reader.addMember(team.ID, user, entity.RoleViewer)
		actor := Actor{UserID: user}

		read, err := gate.CanRead(ctx, team.ID, actor)
		if err != nil || !read.Allowed {
			t.Errorf("expected read allowed, got %+v err %v", read, err)
		}

		write, err := gate.CanWrite(ctx, team.ID, actor)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if write.Allowed {
			t.Error("expected write denied for viewer")
		}
		if write.Reason != domainerror.ReasonWriteRequired {
			t.Errorf("expected reason %q, got %q", domainerror.ReasonWriteRequired, write.Reason)
		}

		admin, err := gate.CanAdmin(ctx, team.ID, actor)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if admin.Allowed {
			t.Error("expected admin denied for viewer")
		}
		if admin.Reason != domainerror.ReasonAdminRequired {
			t.Errorf("expected reason %q, got %q", domainerror.ReasonAdminRequired, admin.Reason)
		}
	})

	t.Run("collaborator can read and write but not admin", func(t *testing.T) {
		gate, reader, team := setup()
		user := uuid.New()
		reader.addMember(team.ID, user, entity.RoleCollaborator)
		actor := Actor{UserID: user}

		read, _ := gate.CanRead(ctx, team.ID, actor)
		write, _ := gate.CanWrite(ctx, team.ID, actor)
		admin, _ := gate.CanAdmin(ctx, team.ID, actor)

		if !read.Allowed || !write.Allowed {
			t.Error("expected read and write allowed for collaborator")
		}
		if admin.Allowed {
			t.Error("expected admin denied for collaborator")
		}
	})

	t.Run("admin can do everything", func(t *testing.T) {
		gate, reader, team := setup()
		user := uuid.New()
		reader.addMember(team.ID, user, entity.RoleAdmin)
		actor := Actor{UserID: user}

		read, _ := gate.CanRead(ctx, team.ID, actor)
		write, _ := gate.CanWrite(ctx, team.ID, actor)
		admin, _ := gate.CanAdmin(ctx, team.ID, actor)

		if !read.Allowed || !write.Allowed || !admin.Allowed {
			t.Error("expected all checks allowed for admin")
		}
	})

	t.Run("non-member is denied everything with access denied", func(t *testing.T) {
		gate, _, team := setup()
		actor := Actor{UserID: uuid.New()}

		for name, check := range map[string]func(context.Context, uuid.UUID, Actor) (Decision, error){
			"CanRead":  gate.CanRead,
			"CanWrite": gate.CanWrite,
			"CanAdmin": gate.CanAdmin,
		} {
			decision, err := check(ctx, team.ID, actor)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", name, err)
			}
			if decision.Allowed {
				t.Errorf("%s: expected denied for non-member", name)
			}
			if decision.Reason != domainerror.ReasonAccessDenied {
				t.Errorf("%s: expected reason %q, got %q", name, domainerror.ReasonAccessDenied, decision.Reason)
			}
		}
	})

	t.Run("superadmin flag grants no team data access", func(t *testing.T) {
		gate, _, team := setup()
		actor := Actor{UserID: uuid.New(), Superadmin: true}

		read, err := gate.CanRead(ctx, team.ID, actor)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if read.Allowed {
			t.Error("expected read denied for non-member superadmin")
		}
	})

	t.Run("soft-deleted team denies members that held roles", func(t *testing.T) {
		gate, reader, team := setup()
		user := uuid.New()
		reader.addMember(team.ID, user, entity.RoleAdmin)
		team.Lifecycle = valueobject.SoftDeletedLifecycle(time.Now())

		admin, err := gate.CanAdmin(ctx, team.ID, Actor{UserID: user})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if admin.Allowed {
			t.Error("expected admin denied on soft-deleted team")
		}
		if admin.Reason != domainerror.ReasonAccessDenied {
			t.Errorf("expected reason %q, got %q", domainerror.ReasonAccessDenied, admin.Reason)
		}
	})
}

func TestRequireSuperadmin(t *testing.T) {
	if err := RequireSuperadmin(Actor{UserID: uuid.New(), Superadmin: true}); err != nil {
		t.Errorf("expected nil error for superadmin, got %v", err)
	}

	err := RequireSuperadmin(Actor{UserID: uuid.New()})
	if err == nil {
		t.Fatal("expected error for non-superadmin")
	}
	var authzErr *domainerror.AuthzError
	if !errors.As(err, &authzErr) {
		t.Fatalf("expected AuthzError, got %T", err)
	}
	if authzErr.Reason != domainerror.ReasonSuperadminRequired {
		t.Errorf("expected reason %q, got %q", domainerror.ReasonSuperadminRequired, authzErr.Reason)
	}
}
