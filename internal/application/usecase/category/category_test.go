package category

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
	categories adapter.CategoryRepository
	books      adapter.BookRepository
	gate       *authz.Gate

	admin *entity.User
	book  *entity.Book
	other *entity.Book
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

	ctx := context.Background()
	admin := entity.NewUser("admin@example.com", "Admin", "hash")
	if err := users.Create(ctx, admin); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	team := entity.NewTeam("Household", admin.ID)
	if err := teams.CreateTeam(ctx, team); err != nil {
		t.Fatalf("failed to create team: %v", err)
	}
	if err := teams.CreateMember(ctx, entity.NewTeamMember(team.ID, admin.ID, entity.RoleAdmin)); err != nil {
		t.Fatalf("failed to add admin: %v", err)
	}

	book := entity.NewBook(team.ID, "Budget", "USD")
	other := entity.NewBook(team.ID, "Savings", "USD")
	for _, b := range []*entity.Book{book, other} {
		if err := books.CreateBook(ctx, b); err != nil {
			t.Fatalf("failed to create book: %v", err)
		}
	}

	return &fixture{
		categories: persistence.NewCategoryRepository(db),
		books:      books,
		gate:       authz.NewGate(authz.NewRoleResolver(teams)),
		admin:      admin,
		book:       book,
		other:      other,
	}
}

func (f *fixture) actor() authz.Actor {
	return authz.Actor{UserID: f.admin.ID}
}

func (f *fixture) createRoot(t *testing.T, name string, categoryType entity.CategoryType) *entity.Category {
	t.Helper()
	out, err := NewCreateCategoryUseCase(f.categories, f.books, f.gate).Execute(context.Background(), CreateCategoryInput{
		BookID: f.book.ID,
		Name:   name,
		Type:   categoryType,
		Actor:  f.actor(),
	})
	if err != nil {
		t.Fatalf("failed to create root category: %v", err)
	}
	return out.Category
}

func (f *fixture) createChild(t *testing.T, name string, parentID uuid.UUID) *entity.Category {
	t.Helper()
	out, err := NewCreateCategoryUseCase(f.categories, f.books, f.gate).Execute(context.Background(), CreateCategoryInput{
		BookID:   f.book.ID,
		Name:     name,
		ParentID: &parentID,
		Actor:    f.actor(),
	})
	if err != nil {
		t.Fatalf("failed to create child category: %v", err)
	}
	return out.Category
}

func requireCategoryErr(t *testing.T, err error, code domainerror.CategoryErrorCode) {
	t.Helper()
	var catErr *domainerror.CategoryError
	if !errors.As(err, &catErr) {
		t.Fatalf("expected category error %s, got %v", code, err)
	}
	if catErr.Code != code {
		t.Fatalf("expected error code %s, got %s", code, catErr.Code)
	}
}

func TestCreateCategory(t *testing.T) {
	t.Run("root carries its own type", func(t *testing.T) {
		f := newFixture(t)
		root := f.createRoot(t, "Food", entity.CategoryTypeExpense)
		if root.Type != entity.CategoryTypeExpense {
			t.Errorf("expected expense, got %s", root.Type)
		}
		if !root.IsRoot() {
			t.Errorf("expected root category")
		}
	})

	t.Run("child inherits the parent's type", func(t *testing.T) {
		f := newFixture(t)
		root := f.createRoot(t, "Food", entity.CategoryTypeExpense)

		out, err := NewCreateCategoryUseCase(f.categories, f.books, f.gate).Execute(context.Background(), CreateCategoryInput{
			BookID:   f.book.ID,
			Name:     "Groceries",
			Type:     entity.CategoryTypeIncome, // ignored, parent wins
			ParentID: &root.ID,
			Actor:    f.actor(),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Category.Type != entity.CategoryTypeExpense {
			t.Errorf("expected child to inherit expense, got %s", out.Category.Type)
		}
	})

	t.Run("root without a type is invalid", func(t *testing.T) {
		f := newFixture(t)
		_, err := NewCreateCategoryUseCase(f.categories, f.books, f.gate).Execute(context.Background(), CreateCategoryInput{
			BookID: f.book.ID,
			Name:   "Food",
			Actor:  f.actor(),
		})
		requireCategoryErr(t, err, domainerror.ErrCodeInvalidCategoryType)
	})

	t.Run("cannot nest under a child", func(t *testing.T) {
		f := newFixture(t)
		root := f.createRoot(t, "Food", entity.CategoryTypeExpense)
		child := f.createChild(t, "Groceries", root.ID)

		_, err := NewCreateCategoryUseCase(f.categories, f.books, f.gate).Execute(context.Background(), CreateCategoryInput{
			BookID:   f.book.ID,
			Name:     "Produce",
			ParentID: &child.ID,
			Actor:    f.actor(),
		})
		requireCategoryErr(t, err, domainerror.ErrCodeCategoryTooDeep)
	})

	t.Run("parent must belong to the same book", func(t *testing.T) {
		f := newFixture(t)
		root := f.createRoot(t, "Food", entity.CategoryTypeExpense)

		_, err := NewCreateCategoryUseCase(f.categories, f.books, f.gate).Execute(context.Background(), CreateCategoryInput{
			BookID:   f.other.ID,
			Name:     "Groceries",
			ParentID: &root.ID,
			Actor:    f.actor(),
		})
		requireCategoryErr(t, err, domainerror.ErrCodeParentDifferentBook)
	})

	t.Run("missing parent reports not-found", func(t *testing.T) {
		f := newFixture(t)
		missing := uuid.New()

		_, err := NewCreateCategoryUseCase(f.categories, f.books, f.gate).Execute(context.Background(), CreateCategoryInput{
			BookID:   f.book.ID,
			Name:     "Groceries",
			ParentID: &missing,
			Actor:    f.actor(),
		})
		requireCategoryErr(t, err, domainerror.ErrCodeParentCategoryNotFound)
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("root type change cascades to children", func(t *testing.T) {
		f := newFixture(t)
		root := f.createRoot(t, "Side Hustle", entity.CategoryTypeExpense)
		child := f.createChild(t, "Consulting", root.ID)

		_, err := NewUpdateCategoryUseCase(f.categories, f.books, f.gate).Execute(context.Background(), UpdateCategoryInput{
			CategoryID: root.ID,
			Type:       entity.CategoryTypeIncome,
			Actor:      f.actor(),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		updatedChild, err := f.categories.FindByID(context.Background(), child.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updatedChild.Type != entity.CategoryTypeIncome {
			t.Errorf("expected child type to follow the root, got %s", updatedChild.Type)
		}
	})

	t.Run("moving under a parent adopts its type", func(t *testing.T) {
		f := newFixture(t)
		income := f.createRoot(t, "Income", entity.CategoryTypeIncome)
		loose := f.createRoot(t, "Bonus", entity.CategoryTypeExpense)

		out, err := NewUpdateCategoryUseCase(f.categories, f.books, f.gate).Execute(context.Background(), UpdateCategoryInput{
			CategoryID: loose.ID,
			Name:       "Bonus",
			ParentSet:  true,
			ParentID:   &income.ID,
			Actor:      f.actor(),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Category.Type != entity.CategoryTypeIncome {
			t.Errorf("expected adopted income type, got %s", out.Category.Type)
		}
		if out.Category.ParentID == nil || *out.Category.ParentID != income.ID {
			t.Errorf("expected parent to be set")
		}
	})

	t.Run("promoting a child to root keeps its type", func(t *testing.T) {
		f := newFixture(t)
		root := f.createRoot(t, "Food", entity.CategoryTypeExpense)
		child := f.createChild(t, "Groceries", root.ID)

		out, err := NewUpdateCategoryUseCase(f.categories, f.books, f.gate).Execute(context.Background(), UpdateCategoryInput{
			CategoryID: child.ID,
			ParentSet:  true,
			ParentID:   nil,
			Actor:      f.actor(),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Category.ParentID != nil {
			t.Errorf("expected category promoted to root")
		}
		if out.Category.Type != entity.CategoryTypeExpense {
			t.Errorf("expected type preserved, got %s", out.Category.Type)
		}
	})

	t.Run("category cannot become its own parent", func(t *testing.T) {
		f := newFixture(t)
		root := f.createRoot(t, "Food", entity.CategoryTypeExpense)

		_, err := NewUpdateCategoryUseCase(f.categories, f.books, f.gate).Execute(context.Background(), UpdateCategoryInput{
			CategoryID: root.ID,
			ParentSet:  true,
			ParentID:   &root.ID,
			Actor:      f.actor(),
		})
		requireCategoryErr(t, err, domainerror.ErrCodeCategorySelfParent)
	})

	t.Run("category with children cannot be nested", func(t *testing.T) {
		f := newFixture(t)
		food := f.createRoot(t, "Food", entity.CategoryTypeExpense)
		f.createChild(t, "Groceries", food.ID)
		bills := f.createRoot(t, "Bills", entity.CategoryTypeExpense)

		_, err := NewUpdateCategoryUseCase(f.categories, f.books, f.gate).Execute(context.Background(), UpdateCategoryInput{
			CategoryID: food.ID,
			ParentSet:  true,
			ParentID:   &bills.ID,
			Actor:      f.actor(),
		})
		requireCategoryErr(t, err, domainerror.ErrCodeCategoryHasChildren)
	})

	t.Run("omitting the parent field leaves the parent alone", func(t *testing.T) {
		f := newFixture(t)
		root := f.createRoot(t, "Food", entity.CategoryTypeExpense)
		child := f.createChild(t, "Groceries", root.ID)

		out, err := NewUpdateCategoryUseCase(f.categories, f.books, f.gate).Execute(context.Background(), UpdateCategoryInput{
			CategoryID: child.ID,
			Name:       "Weekly Groceries",
			Actor:      f.actor(),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Category.ParentID == nil || *out.Category.ParentID != root.ID {
			t.Errorf("expected parent unchanged")
		}
		if out.Category.Name != "Weekly Groceries" {
			t.Errorf("expected renamed category, got %s", out.Category.Name)
		}
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("category with children is protected", func(t *testing.T) {
		f := newFixture(t)
		root := f.createRoot(t, "Food", entity.CategoryTypeExpense)
		f.createChild(t, "Groceries", root.ID)

		err := NewDeleteCategoryUseCase(f.categories, f.books, f.gate).Execute(context.Background(), DeleteCategoryInput{
			CategoryID: root.ID,
			Actor:      f.actor(),
		})
		requireCategoryErr(t, err, domainerror.ErrCodeCategoryChildrenExist)
	})

	t.Run("deleting the child first unblocks the root", func(t *testing.T) {
		f := newFixture(t)
		root := f.createRoot(t, "Food", entity.CategoryTypeExpense)
		child := f.createChild(t, "Groceries", root.ID)

		uc := NewDeleteCategoryUseCase(f.categories, f.books, f.gate)
		if err := uc.Execute(context.Background(), DeleteCategoryInput{CategoryID: child.ID, Actor: f.actor()}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := uc.Execute(context.Background(), DeleteCategoryInput{CategoryID: root.ID, Actor: f.actor()}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		gone, err := f.categories.FindByID(context.Background(), root.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gone != nil {
			t.Errorf("expected category to be gone")
		}
	})

	t.Run("missing category reports not-found", func(t *testing.T) {
		f := newFixture(t)

		err := NewDeleteCategoryUseCase(f.categories, f.books, f.gate).Execute(context.Background(), DeleteCategoryInput{
			CategoryID: uuid.New(),
			Actor:      f.actor(),
		})
		requireCategoryErr(t, err, domainerror.ErrCodeCategoryNotFound)
	})
}

func TestListCategories(t *testing.T) {
	t.Run("lists roots before children", func(t *testing.T) {
		f := newFixture(t)
		root := f.createRoot(t, "Food", entity.CategoryTypeExpense)
		f.createChild(t, "Groceries", root.ID)
		f.createRoot(t, "Income", entity.CategoryTypeIncome)

		out, err := NewListCategoriesUseCase(f.categories, f.books, f.gate).Execute(context.Background(), ListCategoriesInput{
			BookID: f.book.ID,
			Actor:  f.actor(),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Categories) != 3 {
			t.Fatalf("expected 3 categories, got %d", len(out.Categories))
		}
		if !out.Categories[0].IsRoot() || !out.Categories[1].IsRoot() {
			t.Errorf("expected roots ordered first")
		}
	})
}
