package book

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

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
	teams adapter.TeamRepository
	books adapter.BookRepository
	gate  *authz.Gate
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

	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.TeamModel{},
		&model.TeamMemberModel{},
		&model.TeamInviteModel{},
		&model.BookModel{},
		&model.AccountModel{},
		&model.CategoryModel{},
		&model.TransactionModel{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	teams := persistence.NewTeamRepository(db)
	return &fixture{
		users: persistence.NewUserRepository(db),
		teams: teams,
		books: persistence.NewBookRepository(db),
		gate:  authz.NewGate(authz.NewRoleResolver(teams)),
	}
}

func (f *fixture) createUser(t *testing.T, email string) *entity.User {
	t.Helper()
	user := entity.NewUser(email, "Test User", "hash")
	if err := f.users.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func (f *fixture) createTeam(t *testing.T, admin *entity.User) *entity.Team {
	t.Helper()
	team := entity.NewTeam("Household", admin.ID)
	if err := f.teams.CreateTeam(context.Background(), team); err != nil {
		t.Fatalf("failed to create team: %v", err)
	}
	member := entity.NewTeamMember(team.ID, admin.ID, entity.RoleAdmin)
	if err := f.teams.CreateMember(context.Background(), member); err != nil {
		t.Fatalf("failed to add admin member: %v", err)
	}
	return team
}

func (f *fixture) addMember(t *testing.T, teamID uuid.UUID, user *entity.User, role entity.Role) {
	t.Helper()
	member := entity.NewTeamMember(teamID, user.ID, role)
	if err := f.teams.CreateMember(context.Background(), member); err != nil {
		t.Fatalf("failed to add member: %v", err)
	}
}

func (f *fixture) createBook(t *testing.T, teamID uuid.UUID, actor authz.Actor, name string) *entity.Book {
	t.Helper()
	out, err := NewCreateBookUseCase(f.books, f.gate).Execute(context.Background(), CreateBookInput{
		TeamID:   teamID,
		Name:     name,
		Currency: "USD",
		Actor:    actor,
	})
	if err != nil {
		t.Fatalf("failed to create book: %v", err)
	}
	return out.Book
}

func actorOf(user *entity.User) authz.Actor {
	return authz.Actor{UserID: user.ID, Superadmin: user.Superadmin}
}

func requireBookErr(t *testing.T, err error, code domainerror.BookErrorCode) {
	t.Helper()
	var bookErr *domainerror.BookError
	if !errors.As(err, &bookErr) {
		t.Fatalf("expected book error %s, got %v", code, err)
	}
	if bookErr.Code != code {
		t.Fatalf("expected error code %s, got %s", code, bookErr.Code)
	}
}

func requireAuthzErr(t *testing.T, err error, reason string) {
	t.Helper()
	var authzErr *domainerror.AuthzError
	if !errors.As(err, &authzErr) {
		t.Fatalf("expected authz denial %q, got %v", reason, err)
	}
	if authzErr.Reason != reason {
		t.Fatalf("expected denial reason %q, got %q", reason, authzErr.Reason)
	}
}

func TestCreateBook(t *testing.T) {
	t.Run("collaborator creates a book", func(t *testing.T) {
		f := newFixture(t)
		admin := f.createUser(t, "admin@example.com")
		collab := f.createUser(t, "collab@example.com")
		team := f.createTeam(t, admin)
		f.addMember(t, team.ID, collab, entity.RoleCollaborator)

		out, err := NewCreateBookUseCase(f.books, f.gate).Execute(context.Background(), CreateBookInput{
			TeamID:   team.ID,
			Name:     "2026 Budget",
			Currency: "EUR",
			Actor:    actorOf(collab),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Book.Name != "2026 Budget" || out.Book.Currency != "EUR" {
			t.Errorf("unexpected book: %+v", out.Book)
		}
	})

	t.Run("viewer cannot create", func(t *testing.T) {
		f := newFixture(t)
		admin := f.createUser(t, "admin@example.com")
		viewer := f.createUser(t, "viewer@example.com")
		team := f.createTeam(t, admin)
		f.addMember(t, team.ID, viewer, entity.RoleViewer)

		_, err := NewCreateBookUseCase(f.books, f.gate).Execute(context.Background(), CreateBookInput{
			TeamID: team.ID,
			Name:   "2026 Budget",
			Actor:  actorOf(viewer),
		})
		requireAuthzErr(t, err, domainerror.ReasonWriteRequired)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		f := newFixture(t)
		admin := f.createUser(t, "admin@example.com")
		team := f.createTeam(t, admin)

		_, err := NewCreateBookUseCase(f.books, f.gate).Execute(context.Background(), CreateBookInput{
			TeamID: team.ID,
			Name:   "",
			Actor:  actorOf(admin),
		})
		requireBookErr(t, err, domainerror.ErrCodeBookNameRequired)
	})
}

func TestGetBook(t *testing.T) {
	t.Run("member reads an active book", func(t *testing.T) {
		f := newFixture(t)
		admin := f.createUser(t, "admin@example.com")
		team := f.createTeam(t, admin)
		book := f.createBook(t, team.ID, actorOf(admin), "Budget")

		out, err := NewGetBookUseCase(f.books, f.gate).Execute(context.Background(), GetBookInput{
			BookID: book.ID,
			Actor:  actorOf(admin),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Book.ID != book.ID {
			t.Errorf("expected book %s, got %s", book.ID, out.Book.ID)
		}
	})

	t.Run("outsider reads as not-found", func(t *testing.T) {
		f := newFixture(t)
		admin := f.createUser(t, "admin@example.com")
		outsider := f.createUser(t, "outsider@example.com")
		team := f.createTeam(t, admin)
		book := f.createBook(t, team.ID, actorOf(admin), "Budget")

		_, err := NewGetBookUseCase(f.books, f.gate).Execute(context.Background(), GetBookInput{
			BookID: book.ID,
			Actor:  actorOf(outsider),
		})
		requireBookErr(t, err, domainerror.ErrCodeBookNotFound)
	})

	t.Run("book under a soft-deleted team is unreachable", func(t *testing.T) {
		f := newFixture(t)
		admin := f.createUser(t, "admin@example.com")
		team := f.createTeam(t, admin)
		book := f.createBook(t, team.ID, actorOf(admin), "Budget")

		if _, err := f.teams.SoftDeleteTeam(context.Background(), team.ID, time.Now().UTC()); err != nil {
			t.Fatalf("failed to soft-delete team: %v", err)
		}

		_, err := NewGetBookUseCase(f.books, f.gate).Execute(context.Background(), GetBookInput{
			BookID: book.ID,
			Actor:  actorOf(admin),
		})
		requireBookErr(t, err, domainerror.ErrCodeBookNotFound)
	})
}

func TestSoftDeleteBook(t *testing.T) {
	t.Run("admin soft-deletes and the book leaves the listing", func(t *testing.T) {
		f := newFixture(t)
		admin := f.createUser(t, "admin@example.com")
		team := f.createTeam(t, admin)
		book := f.createBook(t, team.ID, actorOf(admin), "Budget")
		f.createBook(t, team.ID, actorOf(admin), "Savings")

		if err := NewSoftDeleteBookUseCase(f.books, f.gate).Execute(context.Background(), SoftDeleteBookInput{
			BookID: book.ID,
			Actor:  actorOf(admin),
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out, err := NewListBooksUseCase(f.books, f.gate).Execute(context.Background(), ListBooksInput{
			TeamID: team.ID,
			Actor:  actorOf(admin),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Books) != 1 {
			t.Fatalf("expected 1 book after soft delete, got %d", len(out.Books))
		}
		if out.Books[0].Name != "Savings" {
			t.Errorf("expected the remaining book to be Savings, got %s", out.Books[0].Name)
		}
	})

	t.Run("collaborator cannot soft-delete", func(t *testing.T) {
		f := newFixture(t)
		admin := f.createUser(t, "admin@example.com")
		collab := f.createUser(t, "collab@example.com")
		team := f.createTeam(t, admin)
		f.addMember(t, team.ID, collab, entity.RoleCollaborator)
		book := f.createBook(t, team.ID, actorOf(admin), "Budget")

		err := NewSoftDeleteBookUseCase(f.books, f.gate).Execute(context.Background(), SoftDeleteBookInput{
			BookID: book.ID,
			Actor:  actorOf(collab),
		})
		requireAuthzErr(t, err, domainerror.ReasonAdminRequired)
	})

	t.Run("double soft-delete reports not-found", func(t *testing.T) {
		f := newFixture(t)
		admin := f.createUser(t, "admin@example.com")
		super := f.createUser(t, "super@example.com")
		super.Superadmin = true
		team := f.createTeam(t, admin)
		book := f.createBook(t, team.ID, actorOf(admin), "Budget")

		uc := NewSoftDeleteBookUseCase(f.books, f.gate)
		if err := uc.Execute(context.Background(), SoftDeleteBookInput{
			BookID: book.ID,
			Actor:  actorOf(admin),
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		err := uc.Execute(context.Background(), SoftDeleteBookInput{
			BookID: book.ID,
			Actor:  actorOf(super),
		})
		requireBookErr(t, err, domainerror.ErrCodeBookNotFound)
	})
}

func TestRestoreBook(t *testing.T) {
	t.Run("team admin restores a soft-deleted book", func(t *testing.T) {
		f := newFixture(t)
		admin := f.createUser(t, "admin@example.com")
		team := f.createTeam(t, admin)
		book := f.createBook(t, team.ID, actorOf(admin), "Budget")

		if err := NewSoftDeleteBookUseCase(f.books, f.gate).Execute(context.Background(), SoftDeleteBookInput{
			BookID: book.ID,
			Actor:  actorOf(admin),
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := NewRestoreBookUseCase(f.books, f.teams).Execute(context.Background(), RestoreBookInput{
			BookID: book.ID,
			Actor:  actorOf(admin),
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		restored, err := f.books.FindReachableBookByID(context.Background(), book.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if restored == nil {
			t.Fatalf("expected book to be reachable after restore")
		}
	})

	t.Run("collaborator cannot restore", func(t *testing.T) {
		f := newFixture(t)
		admin := f.createUser(t, "admin@example.com")
		collab := f.createUser(t, "collab@example.com")
		team := f.createTeam(t, admin)
		f.addMember(t, team.ID, collab, entity.RoleCollaborator)
		book := f.createBook(t, team.ID, actorOf(admin), "Budget")

		if err := NewSoftDeleteBookUseCase(f.books, f.gate).Execute(context.Background(), SoftDeleteBookInput{
			BookID: book.ID,
			Actor:  actorOf(admin),
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		err := NewRestoreBookUseCase(f.books, f.teams).Execute(context.Background(), RestoreBookInput{
			BookID: book.ID,
			Actor:  actorOf(collab),
		})
		requireAuthzErr(t, err, domainerror.ReasonAdminRequired)
	})

	t.Run("restoring an active book is a state error", func(t *testing.T) {
		f := newFixture(t)
		admin := f.createUser(t, "admin@example.com")
		team := f.createTeam(t, admin)
		book := f.createBook(t, team.ID, actorOf(admin), "Budget")

		err := NewRestoreBookUseCase(f.books, f.teams).Execute(context.Background(), RestoreBookInput{
			BookID: book.ID,
			Actor:  actorOf(admin),
		})
		requireBookErr(t, err, domainerror.ErrCodeBookNotDeleted)
	})
}

func TestPurgeBook(t *testing.T) {
	t.Run("requires superadmin", func(t *testing.T) {
		f := newFixture(t)
		admin := f.createUser(t, "admin@example.com")
		team := f.createTeam(t, admin)
		book := f.createBook(t, team.ID, actorOf(admin), "Budget")

		err := NewPurgeBookUseCase(f.books).Execute(context.Background(), PurgeBookInput{
			BookID: book.ID,
			Actor:  actorOf(admin),
		})
		requireAuthzErr(t, err, domainerror.ReasonSuperadminRequired)
	})

	t.Run("requires the soft-deleted state", func(t *testing.T) {
		f := newFixture(t)
		admin := f.createUser(t, "admin@example.com")
		super := f.createUser(t, "super@example.com")
		super.Superadmin = true
		team := f.createTeam(t, admin)
		book := f.createBook(t, team.ID, actorOf(admin), "Budget")

		err := NewPurgeBookUseCase(f.books).Execute(context.Background(), PurgeBookInput{
			BookID: book.ID,
			Actor:  actorOf(super),
		})
		requireBookErr(t, err, domainerror.ErrCodeBookNotSoftDeleted)
	})

	t.Run("removes the book permanently", func(t *testing.T) {
		f := newFixture(t)
		admin := f.createUser(t, "admin@example.com")
		super := f.createUser(t, "super@example.com")
		super.Superadmin = true
		team := f.createTeam(t, admin)
		book := f.createBook(t, team.ID, actorOf(admin), "Budget")

		if err := NewSoftDeleteBookUseCase(f.books, f.gate).Execute(context.Background(), SoftDeleteBookInput{
			BookID: book.ID,
			Actor:  actorOf(admin),
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := NewPurgeBookUseCase(f.books).Execute(context.Background(), PurgeBookInput{
			BookID: book.ID,
			Actor:  actorOf(super),
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		gone, err := f.books.FindBookByIDUnscoped(context.Background(), book.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gone != nil {
			t.Errorf("expected book row to be gone after purge")
		}
	})
}

func TestListAllBooks(t *testing.T) {
	t.Run("requires superadmin", func(t *testing.T) {
		f := newFixture(t)
		admin := f.createUser(t, "admin@example.com")

		_, err := NewListAllBooksUseCase(f.books).Execute(context.Background(), ListAllBooksInput{
			Actor: actorOf(admin),
		})
		requireAuthzErr(t, err, domainerror.ReasonSuperadminRequired)
	})

	t.Run("includes soft-deleted books", func(t *testing.T) {
		f := newFixture(t)
		admin := f.createUser(t, "admin@example.com")
		super := f.createUser(t, "super@example.com")
		super.Superadmin = true
		team := f.createTeam(t, admin)
		f.createBook(t, team.ID, actorOf(admin), "Active")
		deleted := f.createBook(t, team.ID, actorOf(admin), "Deleted")

		if err := NewSoftDeleteBookUseCase(f.books, f.gate).Execute(context.Background(), SoftDeleteBookInput{
			BookID: deleted.ID,
			Actor:  actorOf(admin),
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out, err := NewListAllBooksUseCase(f.books).Execute(context.Background(), ListAllBooksInput{
			Actor: actorOf(super),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Books) != 2 {
			t.Errorf("expected 2 books in the global listing, got %d", len(out.Books))
		}
	})
}
