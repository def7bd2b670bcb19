package account

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
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
	users        adapter.UserRepository
	teams        adapter.TeamRepository
	books        adapter.BookRepository
	accounts     adapter.AccountRepository
	transactions adapter.TransactionRepository
	gate         *authz.Gate

	admin  *entity.User
	viewer *entity.User
	book   *entity.Book
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
	f := &fixture{
		users:        persistence.NewUserRepository(db),
		teams:        teams,
		books:        persistence.NewBookRepository(db),
		accounts:     persistence.NewAccountRepository(db),
		transactions: persistence.NewTransactionRepository(db),
		gate:         authz.NewGate(authz.NewRoleResolver(teams)),
	}

	ctx := context.Background()
	f.admin = entity.NewUser("admin@example.com", "Admin", "hash")
	f.viewer = entity.NewUser("viewer@example.com", "Viewer", "hash")
	for _, u := range []*entity.User{f.admin, f.viewer} {
		if err := f.users.Create(ctx, u); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
	}

	team := entity.NewTeam("Household", f.admin.ID)
	if err := teams.CreateTeam(ctx, team); err != nil {
		t.Fatalf("failed to create team: %v", err)
	}
	if err := teams.CreateMember(ctx, entity.NewTeamMember(team.ID, f.admin.ID, entity.RoleAdmin)); err != nil {
		t.Fatalf("failed to add admin: %v", err)
	}
	if err := teams.CreateMember(ctx, entity.NewTeamMember(team.ID, f.viewer.ID, entity.RoleViewer)); err != nil {
		t.Fatalf("failed to add viewer: %v", err)
	}

	f.book = entity.NewBook(team.ID, "Budget", "USD")
	if err := f.books.CreateBook(ctx, f.book); err != nil {
		t.Fatalf("failed to create book: %v", err)
	}

	return f
}

func (f *fixture) createAccount(t *testing.T, name string, accountType entity.AccountType) *entity.Account {
	t.Helper()
	out, err := NewCreateAccountUseCase(f.accounts, f.books, f.gate).Execute(context.Background(), CreateAccountInput{
		BookID: f.book.ID,
		Name:   name,
		Type:   accountType,
		Actor:  actorOf(f.admin),
	})
	if err != nil {
		t.Fatalf("failed to create account: %v", err)
	}
	return out.Account
}

func (f *fixture) addTransaction(t *testing.T, accountID uuid.UUID, amount string, date time.Time, exercised bool) {
	t.Helper()
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("bad amount %s: %v", amount, err)
	}
	txn := entity.NewTransaction(accountID, nil, "test transaction", amt, date, exercised)
	if err := f.transactions.Create(context.Background(), txn); err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}
}

func actorOf(user *entity.User) authz.Actor {
	return authz.Actor{UserID: user.ID, Superadmin: user.Superadmin}
}

func requireAccountErr(t *testing.T, err error, code domainerror.AccountErrorCode) {
	t.Helper()
	var acctErr *domainerror.AccountError
	if !errors.As(err, &acctErr) {
		t.Fatalf("expected account error %s, got %v", code, err)
	}
	if acctErr.Code != code {
		t.Fatalf("expected error code %s, got %s", code, acctErr.Code)
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

func TestCreateAccount(t *testing.T) {
	t.Run("creates debit and credit accounts", func(t *testing.T) {
		f := newFixture(t)

		debit := f.createAccount(t, "Checking", entity.AccountTypeDebit)
		credit := f.createAccount(t, "Visa", entity.AccountTypeCredit)

		if debit.Type != entity.AccountTypeDebit {
			t.Errorf("expected debit type, got %s", debit.Type)
		}
		if credit.Type != entity.AccountTypeCredit {
			t.Errorf("expected credit type, got %s", credit.Type)
		}
	})

	t.Run("rejects unknown account type", func(t *testing.T) {
		f := newFixture(t)

		_, err := NewCreateAccountUseCase(f.accounts, f.books, f.gate).Execute(context.Background(), CreateAccountInput{
			BookID: f.book.ID,
			Name:   "Checking",
			Type:   entity.AccountType("savings"),
			Actor:  actorOf(f.admin),
		})
		requireAccountErr(t, err, domainerror.ErrCodeInvalidAccountType)
	})

	t.Run("viewer cannot create", func(t *testing.T) {
		f := newFixture(t)

		_, err := NewCreateAccountUseCase(f.accounts, f.books, f.gate).Execute(context.Background(), CreateAccountInput{
			BookID: f.book.ID,
			Name:   "Checking",
			Type:   entity.AccountTypeDebit,
			Actor:  actorOf(f.viewer),
		})
		requireAuthzErr(t, err, domainerror.ReasonWriteRequired)
	})
}

func TestDeleteAccount(t *testing.T) {
	t.Run("deletes an empty account", func(t *testing.T) {
		f := newFixture(t)
		account := f.createAccount(t, "Checking", entity.AccountTypeDebit)

		if err := NewDeleteAccountUseCase(f.accounts, f.books, f.gate).Execute(context.Background(), DeleteAccountInput{
			AccountID: account.ID,
			Actor:     actorOf(f.admin),
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		gone, err := f.accounts.FindByID(context.Background(), account.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gone != nil {
			t.Errorf("expected account to be gone")
		}
	})

	t.Run("account with transactions is protected", func(t *testing.T) {
		f := newFixture(t)
		account := f.createAccount(t, "Checking", entity.AccountTypeDebit)
		f.addTransaction(t, account.ID, "-25.00", time.Now().UTC(), true)

		err := NewDeleteAccountUseCase(f.accounts, f.books, f.gate).Execute(context.Background(), DeleteAccountInput{
			AccountID: account.ID,
			Actor:     actorOf(f.admin),
		})
		requireAccountErr(t, err, domainerror.ErrCodeAccountHasTransactions)
	})
}

func TestGetBalance(t *testing.T) {
	date := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("bad date %s: %v", s, err)
		}
		return d
	}

	t.Run("exercised counts cleared transactions only", func(t *testing.T) {
		f := newFixture(t)
		account := f.createAccount(t, "Checking", entity.AccountTypeDebit)

		f.addTransaction(t, account.ID, "1000.00", date("2026-01-01"), true)
		f.addTransaction(t, account.ID, "-250.50", date("2026-01-10"), true)
		f.addTransaction(t, account.ID, "-99.99", date("2026-01-20"), false)

		out, err := NewGetBalanceUseCase(f.accounts, f.books, f.transactions, f.gate).Execute(context.Background(), GetBalanceInput{
			AccountID: account.ID,
			Actor:     actorOf(f.admin),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := out.Balance.Exercised.String(); got != "749.5" {
			t.Errorf("expected exercised 749.5, got %s", got)
		}
		if got := out.Balance.Projected.String(); got != "649.51" {
			t.Errorf("expected projected 649.51, got %s", got)
		}
	})

	t.Run("up_to excludes later transactions", func(t *testing.T) {
		f := newFixture(t)
		account := f.createAccount(t, "Checking", entity.AccountTypeDebit)

		f.addTransaction(t, account.ID, "1000.00", date("2026-01-01"), true)
		f.addTransaction(t, account.ID, "-250.50", date("2026-02-10"), true)

		upTo := date("2026-01-31")
		out, err := NewGetBalanceUseCase(f.accounts, f.books, f.transactions, f.gate).Execute(context.Background(), GetBalanceInput{
			AccountID: account.ID,
			UpTo:      &upTo,
			Actor:     actorOf(f.admin),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := out.Balance.Exercised.String(); got != "1000" {
			t.Errorf("expected exercised 1000, got %s", got)
		}
		if got := out.Balance.Projected.String(); got != "1000" {
			t.Errorf("expected projected 1000, got %s", got)
		}
	})

	t.Run("empty account balances at zero", func(t *testing.T) {
		f := newFixture(t)
		account := f.createAccount(t, "Checking", entity.AccountTypeDebit)

		out, err := NewGetBalanceUseCase(f.accounts, f.books, f.transactions, f.gate).Execute(context.Background(), GetBalanceInput{
			AccountID: account.ID,
			Actor:     actorOf(f.viewer),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Balance.Exercised.IsZero() || !out.Balance.Projected.IsZero() {
			t.Errorf("expected zero balances, got %+v", out.Balance)
		}
	})

	t.Run("missing account reports not-found", func(t *testing.T) {
		f := newFixture(t)

		_, err := NewGetBalanceUseCase(f.accounts, f.books, f.transactions, f.gate).Execute(context.Background(), GetBalanceInput{
			AccountID: uuid.New(),
			Actor:     actorOf(f.admin),
		})
		requireAccountErr(t, err, domainerror.ErrCodeAccountNotFound)
	})
}

func TestUpdateAccount(t *testing.T) {
	t.Run("renames and retypes", func(t *testing.T) {
		f := newFixture(t)
		account := f.createAccount(t, "Checking", entity.AccountTypeDebit)

		out, err := NewUpdateAccountUseCase(f.accounts, f.books, f.gate).Execute(context.Background(), UpdateAccountInput{
			AccountID: account.ID,
			Name:      "Joint Checking",
			Type:      entity.AccountTypeCredit,
			Actor:     actorOf(f.admin),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Account.Name != "Joint Checking" || out.Account.Type != entity.AccountTypeCredit {
			t.Errorf("unexpected account after update: %+v", out.Account)
		}
	})

	t.Run("viewer cannot update", func(t *testing.T) {
		f := newFixture(t)
		account := f.createAccount(t, "Checking", entity.AccountTypeDebit)

		_, err := NewUpdateAccountUseCase(f.accounts, f.books, f.gate).Execute(context.Background(), UpdateAccountInput{
			AccountID: account.ID,
			Name:      "Hijacked",
			Type:      entity.AccountTypeDebit,
			Actor:     actorOf(f.viewer),
		})
		requireAuthzErr(t, err, domainerror.ReasonWriteRequired)
	})
}

func TestListAccounts(t *testing.T) {
	t.Run("viewer lists the book's accounts", func(t *testing.T) {
		f := newFixture(t)
		f.createAccount(t, "Checking", entity.AccountTypeDebit)
		f.createAccount(t, "Visa", entity.AccountTypeCredit)

		out, err := NewListAccountsUseCase(f.accounts, f.books, f.gate).Execute(context.Background(), ListAccountsInput{
			BookID: f.book.ID,
			Actor:  actorOf(f.viewer),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Accounts) != 2 {
			t.Errorf("expected 2 accounts, got %d", len(out.Accounts))
		}
	})
}
