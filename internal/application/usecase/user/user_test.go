package user

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	"github.com/ledgerbook/backend/internal/domain/entity"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
	"github.com/ledgerbook/backend/internal/integration/persistence"
	"github.com/ledgerbook/backend/internal/integration/persistence/model"
)

type fixture struct {
	users adapter.UserRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&model.UserModel{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &fixture{users: persistence.NewUserRepository(db)}
}

func (f *fixture) createUser(t *testing.T, email string, superadmin bool) *entity.User {
	t.Helper()
	user := entity.NewUser(email, "Test User", "hash")
	user.Superadmin = superadmin
	if err := f.users.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func actorOf(user *entity.User) authz.Actor {
	return authz.Actor{UserID: user.ID, Superadmin: user.Superadmin}
}

func requireUserErr(t *testing.T, err error, code domainerror.UserErrorCode) {
	t.Helper()
	var userErr *domainerror.UserError
	if !errors.As(err, &userErr) {
		t.Fatalf("expected user error, got %v", err)
	}
	if userErr.Code != code {
		t.Fatalf("expected error code %s, got %s", code, userErr.Code)
	}
}

func requireAuthzErr(t *testing.T, err error, reason string) {
	t.Helper()
	var authzErr *domainerror.AuthzError
	if !errors.As(err, &authzErr) {
		t.Fatalf("expected authz error, got %v", err)
	}
	if authzErr.Reason != reason {
		t.Fatalf("expected reason %q, got %q", reason, authzErr.Reason)
	}
}

func TestListUsers(t *testing.T) {
	t.Run("superadmin lists every user", func(t *testing.T) {
		f := newFixture(t)
		admin := f.createUser(t, "root@example.com", true)
		f.createUser(t, "alice@example.com", false)
		f.createUser(t, "bob@example.com", false)

		out, err := NewListUsersUseCase(f.users).Execute(context.Background(), ListUsersInput{
			Actor: actorOf(admin),
		})
		if err != nil {
			t.Fatalf("failed to list users: %v", err)
		}
		if len(out.Users) != 3 {
			t.Fatalf("expected 3 users, got %d", len(out.Users))
		}
	})

	t.Run("regular user is denied", func(t *testing.T) {
		f := newFixture(t)
		alice := f.createUser(t, "alice@example.com", false)

		_, err := NewListUsersUseCase(f.users).Execute(context.Background(), ListUsersInput{
			Actor: actorOf(alice),
		})
		requireAuthzErr(t, err, domainerror.ReasonSuperadminRequired)
	})
}

func TestSetUserStatus(t *testing.T) {
	t.Run("superadmin disables a user", func(t *testing.T) {
		f := newFixture(t)
		admin := f.createUser(t, "root@example.com", true)
		alice := f.createUser(t, "alice@example.com", false)

		out, err := NewSetUserStatusUseCase(f.users).Execute(context.Background(), SetUserStatusInput{
			UserID: alice.ID,
			Active: false,
			Actor:  actorOf(admin),
		})
		if err != nil {
			t.Fatalf("failed to disable user: %v", err)
		}
		if out.User.Active {
			t.Fatal("expected user to be disabled")
		}

		stored, err := f.users.FindByID(context.Background(), alice.ID)
		if err != nil {
			t.Fatalf("failed to find user: %v", err)
		}
		if stored.Active {
			t.Fatal("expected disabled flag to be persisted")
		}
	})

	t.Run("superadmin re-enables a disabled user", func(t *testing.T) {
		f := newFixture(t)
		admin := f.createUser(t, "root@example.com", true)
		alice := f.createUser(t, "alice@example.com", false)
		alice.Active = false
		if err := f.users.Update(context.Background(), alice); err != nil {
			t.Fatalf("failed to disable user: %v", err)
		}

		out, err := NewSetUserStatusUseCase(f.users).Execute(context.Background(), SetUserStatusInput{
			UserID: alice.ID,
			Active: true,
			Actor:  actorOf(admin),
		})
		if err != nil {
			t.Fatalf("failed to enable user: %v", err)
		}
		if !out.User.Active {
			t.Fatal("expected user to be enabled")
		}
	})

	t.Run("enabling an already enabled user is rejected", func(t *testing.T) {
		f := newFixture(t)
		admin := f.createUser(t, "root@example.com", true)
		alice := f.createUser(t, "alice@example.com", false)

		_, err := NewSetUserStatusUseCase(f.users).Execute(context.Background(), SetUserStatusInput{
			UserID: alice.ID,
			Active: true,
			Actor:  actorOf(admin),
		})
		requireUserErr(t, err, domainerror.ErrCodeUserAlreadyEnabled)
	})

	t.Run("disabling an already disabled user is rejected", func(t *testing.T) {
		f := newFixture(t)
		admin := f.createUser(t, "root@example.com", true)
		alice := f.createUser(t, "alice@example.com", false)
		alice.Active = false
		if err := f.users.Update(context.Background(), alice); err != nil {
			t.Fatalf("failed to disable user: %v", err)
		}

		_, err := NewSetUserStatusUseCase(f.users).Execute(context.Background(), SetUserStatusInput{
			UserID: alice.ID,
			Active: false,
			Actor:  actorOf(admin),
		})
		requireUserErr(t, err, domainerror.ErrCodeUserAlreadyDisabled)
	})

	t.Run("unknown user yields not found", func(t *testing.T) {
		f := newFixture(t)
		admin := f.createUser(t, "root@example.com", true)

		_, err := NewSetUserStatusUseCase(f.users).Execute(context.Background(), SetUserStatusInput{
			UserID: uuid.New(),
			Active: false,
			Actor:  actorOf(admin),
		})
		requireUserErr(t, err, domainerror.ErrCodeAdminUserNotFound)
	})

	t.Run("regular user is denied", func(t *testing.T) {
		f := newFixture(t)
		alice := f.createUser(t, "alice@example.com", false)
		bob := f.createUser(t, "bob@example.com", false)

		_, err := NewSetUserStatusUseCase(f.users).Execute(context.Background(), SetUserStatusInput{
			UserID: bob.ID,
			Active: false,
			Actor:  actorOf(alice),
		})
		requireAuthzErr(t, err, domainerror.ReasonSuperadminRequired)
	})
}
