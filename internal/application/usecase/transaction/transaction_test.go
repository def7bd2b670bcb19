package transaction

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
	transactions adapter.TransactionRepository
	accounts     adapter.AccountRepository
	categories   adapter.CategoryRepository
	books        adapter.BookRepository
	gate         *authz.Gate

	admin    *entity.User
	viewer   *entity.User
	book     *entity.Book
	other    *entity.Book
	account  *entity.Account
	category *entity.Category
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
	users := persistence.NewUserRepository(db)
	books := persistence.NewBookRepository(db)
	accounts := persistence.NewAccountRepository(db)
	categories := persistence.NewCategoryRepository(db)

	ctx := context.Background()
	admin := entity.NewUser("admin@example.com", "Admin", "hash")
	viewer := entity.NewUser("viewer@example.com", "Viewer", "hash")
	for _, u := range []*entity.User{admin, viewer} {
		if err := users.Create(ctx, u); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
	}

	team := entity.NewTeam("Household", admin.ID)
	if err := teams.CreateTeam(ctx, team); err != nil {
		t.Fatalf("failed to create team: %v", err)
	}
	if err := teams.CreateMember(ctx, entity.NewTeamMember(team.ID, admin.ID, entity.RoleAdmin)); err != nil {
		t.Fatalf("failed to add admin: %v", err)
	}
	if err := teams.CreateMember(ctx, entity.NewTeamMember(team.ID, viewer.ID, entity.RoleViewer)); err != nil {
		t.Fatalf("failed to add viewer: %v", err)
	}

	book := entity.NewBook(team.ID, "Budget", "USD")
	other := entity.NewBook(team.ID, "Savings", "USD")
	for _, b := range []*entity.Book{book, other} {
		if err := books.CreateBook(ctx, b); err != nil {
			t.Fatalf("failed to create book: %v", err)
		}
	}

	account := entity.NewAccount(book.ID, "Checking", entity.AccountTypeDebit)
	if err := accounts.Create(ctx, account); err != nil {
		t.Fatalf("failed to create account: %v", err)
	}

	category := entity.NewCategory(book.ID, "Food", entity.CategoryTypeExpense, nil)
	if err := categories.Create(ctx, category); err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	return &fixture{
		transactions: persistence.NewTransactionRepository(db),
		accounts:     accounts,
		categories:   categories,
		books:        books,
		gate:         authz.NewGate(authz.NewRoleResolver(teams)),
		admin:        admin,
		viewer:       viewer,
		book:         book,
		other:        other,
		account:      account,
		category:     category,
	}
}

func actorOf(user *entity.User) authz.Actor {
	return authz.Actor{UserID: user.ID, Superadmin: user.Superadmin}
}

func amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad amount %s: %v", s, err)
	}
	return d
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %s: %v", s, err)
	}
	return d
}

func requireTxnErr(t *testing.T, err error, code domainerror.TransactionErrorCode) {
	t.Helper()
	var txnErr *domainerror.TransactionError
	if !errors.As(err, &txnErr) {
		t.Fatalf("expected transaction error %s, got %v", code, err)
	}
	if txnErr.Code != code {
		t.Fatalf("expected error code %s, got %s", code, txnErr.Code)
	}
}

func TestCreateTransaction(t *testing.T) {
	t.Run("creates a categorized transaction", func(t *testing.T) {
		f := newFixture(t)

		out, err := NewCreateTransactionUseCase(f.transactions, f.accounts, f.categories, f.books, f.gate).Execute(context.Background(), CreateTransactionInput{
			AccountID:   f.account.ID,
			CategoryID:  &f.category.ID,
			Description: "weekly groceries",
			Amount:      amount(t, "-82.45"),
			Date:        date(t, "2026-03-05"),
			Exercised:   true,
			Actor:       actorOf(f.admin),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Transaction.CategoryID == nil || *out.Transaction.CategoryID != f.category.ID {
			t.Errorf("expected category reference preserved")
		}
		if !out.Transaction.Amount.Equal(amount(t, "-82.45")) {
			t.Errorf("expected amount -82.45, got %s", out.Transaction.Amount)
		}
	})

	t.Run("category from another book is rejected", func(t *testing.T) {
		f := newFixture(t)
		foreign := entity.NewCategory(f.other.ID, "Misc", entity.CategoryTypeExpense, nil)
		if err := f.categories.Create(context.Background(), foreign); err != nil {
			t.Fatalf("failed to create category: %v", err)
		}

		_, err := NewCreateTransactionUseCase(f.transactions, f.accounts, f.categories, f.books, f.gate).Execute(context.Background(), CreateTransactionInput{
			AccountID:   f.account.ID,
			CategoryID:  &foreign.ID,
			Description: "misfiled",
			Amount:      amount(t, "-10.00"),
			Date:        date(t, "2026-03-05"),
			Actor:       actorOf(f.admin),
		})
		requireTxnErr(t, err, domainerror.ErrCodeTransactionCategoryWrongBook)
	})

	t.Run("missing category reference reports not-found", func(t *testing.T) {
		f := newFixture(t)
		missing := uuid.New()

		_, err := NewCreateTransactionUseCase(f.transactions, f.accounts, f.categories, f.books, f.gate).Execute(context.Background(), CreateTransactionInput{
			AccountID:   f.account.ID,
			CategoryID:  &missing,
			Description: "ghost",
			Amount:      amount(t, "-10.00"),
			Date:        date(t, "2026-03-05"),
			Actor:       actorOf(f.admin),
		})
		requireTxnErr(t, err, domainerror.ErrCodeTransactionCategoryNotFound)
	})

	t.Run("viewer cannot create", func(t *testing.T) {
		f := newFixture(t)

		_, err := NewCreateTransactionUseCase(f.transactions, f.accounts, f.categories, f.books, f.gate).Execute(context.Background(), CreateTransactionInput{
			AccountID:   f.account.ID,
			Description: "sneaky",
			Amount:      amount(t, "-10.00"),
			Date:        date(t, "2026-03-05"),
			Actor:       actorOf(f.viewer),
		})
		var authzErr *domainerror.AuthzError
		if !errors.As(err, &authzErr) || authzErr.Reason != domainerror.ReasonWriteRequired {
			t.Fatalf("expected write denial, got %v", err)
		}
	})
}

func TestUpdateTransaction(t *testing.T) {
	create := func(t *testing.T, f *fixture) *entity.Transaction {
		t.Helper()
		out, err := NewCreateTransactionUseCase(f.transactions, f.accounts, f.categories, f.books, f.gate).Execute(context.Background(), CreateTransactionInput{
			AccountID:   f.account.ID,
			CategoryID:  &f.category.ID,
			Description: "original",
			Amount:      amount(t, "-50.00"),
			Date:        date(t, "2026-03-01"),
			Exercised:   false,
			Actor:       actorOf(f.admin),
		})
		if err != nil {
			t.Fatalf("failed to create transaction: %v", err)
		}
		return out.Transaction
	}

	t.Run("updates fields and clears the category", func(t *testing.T) {
		f := newFixture(t)
		txn := create(t, f)

		out, err := NewUpdateTransactionUseCase(f.transactions, f.accounts, f.categories, f.books, f.gate).Execute(context.Background(), UpdateTransactionInput{
			TransactionID: txn.ID,
			Description:   "settled",
			Amount:        amount(t, "-55.00"),
			Date:          date(t, "2026-03-02"),
			Exercised:     true,
			CategorySet:   true,
			CategoryID:    nil,
			Actor:         actorOf(f.admin),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Transaction.CategoryID != nil {
			t.Errorf("expected category cleared")
		}
		if !out.Transaction.Exercised {
			t.Errorf("expected transaction marked exercised")
		}
	})

	t.Run("keeps the category when the field is omitted", func(t *testing.T) {
		f := newFixture(t)
		txn := create(t, f)

		out, err := NewUpdateTransactionUseCase(f.transactions, f.accounts, f.categories, f.books, f.gate).Execute(context.Background(), UpdateTransactionInput{
			TransactionID: txn.ID,
			Description:   "renamed",
			Amount:        txn.Amount,
			Date:          txn.Date,
			Exercised:     txn.Exercised,
			Actor:         actorOf(f.admin),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Transaction.CategoryID == nil || *out.Transaction.CategoryID != f.category.ID {
			t.Errorf("expected category untouched")
		}
	})

	t.Run("missing transaction reports not-found", func(t *testing.T) {
		f := newFixture(t)

		_, err := NewUpdateTransactionUseCase(f.transactions, f.accounts, f.categories, f.books, f.gate).Execute(context.Background(), UpdateTransactionInput{
			TransactionID: uuid.New(),
			Description:   "ghost",
			Amount:        amount(t, "-1.00"),
			Date:          date(t, "2026-03-02"),
			Actor:         actorOf(f.admin),
		})
		requireTxnErr(t, err, domainerror.ErrCodeTransactionNotFound)
	})
}

func TestListTransactions(t *testing.T) {
	t.Run("orders by date descending and honors up_to", func(t *testing.T) {
		f := newFixture(t)
		uc := NewCreateTransactionUseCase(f.transactions, f.accounts, f.categories, f.books, f.gate)

		for _, d := range []string{"2026-01-15", "2026-02-15", "2026-03-15"} {
			if _, err := uc.Execute(context.Background(), CreateTransactionInput{
				AccountID:   f.account.ID,
				Description: "entry " + d,
				Amount:      amount(t, "-10.00"),
				Date:        date(t, d),
				Exercised:   true,
				Actor:       actorOf(f.admin),
			}); err != nil {
				t.Fatalf("failed to create transaction: %v", err)
			}
		}

		upTo := date(t, "2026-02-28")
		out, err := NewListTransactionsUseCase(f.transactions, f.accounts, f.books, f.gate).Execute(context.Background(), ListTransactionsInput{
			AccountID: f.account.ID,
			UpTo:      &upTo,
			Actor:     actorOf(f.viewer),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Transactions) != 2 {
			t.Fatalf("expected 2 transactions up to February, got %d", len(out.Transactions))
		}
		if out.Transactions[0].Date.Before(out.Transactions[1].Date) {
			t.Errorf("expected newest first ordering")
		}
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("removes the transaction", func(t *testing.T) {
		f := newFixture(t)
		out, err := NewCreateTransactionUseCase(f.transactions, f.accounts, f.categories, f.books, f.gate).Execute(context.Background(), CreateTransactionInput{
			AccountID:   f.account.ID,
			Description: "to delete",
			Amount:      amount(t, "-10.00"),
			Date:        date(t, "2026-03-05"),
			Actor:       actorOf(f.admin),
		})
		if err != nil {
			t.Fatalf("failed to create transaction: %v", err)
		}

		if err := NewDeleteTransactionUseCase(f.transactions, f.accounts, f.books, f.gate).Execute(context.Background(), DeleteTransactionInput{
			TransactionID: out.Transaction.ID,
			Actor:         actorOf(f.admin),
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		gone, err := f.transactions.FindByID(context.Background(), out.Transaction.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gone != nil {
			t.Errorf("expected transaction to be gone")
		}
	})

	t.Run("missing transaction reports not-found", func(t *testing.T) {
		f := newFixture(t)

		err := NewDeleteTransactionUseCase(f.transactions, f.accounts, f.books, f.gate).Execute(context.Background(), DeleteTransactionInput{
			TransactionID: uuid.New(),
			Actor:         actorOf(f.admin),
		})
		requireTxnErr(t, err, domainerror.ErrCodeTransactionNotFound)
	})
}
