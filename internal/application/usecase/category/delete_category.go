package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for deleting a category.
type DeleteCategoryInput struct {
	CategoryID uuid.UUID
	Actor      authz.Actor
}

// DeleteCategoryUseCase handles category deletion.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	bookRepo     adapter.BookRepository
	gate         *authz.Gate
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository, bookRepo adapter.BookRepository, gate *authz.Gate) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		bookRepo:     bookRepo,
		gate:         gate,
	}
}

// Execute deletes the category. A category that still has children is
// protected; transactions referencing the category keep existing with their
// category reference cleared.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to find category: %w", err)
	}
	if category == nil {
		return categoryNotFound()
	}

	if _, err := resolveBookForWrite(ctx, uc.bookRepo, uc.gate, category.BookID, input.Actor); err != nil {
		return err
	}

	children, err := uc.categoryRepo.CountChildren(ctx, input.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to count children: %w", err)
	}
	if children > 0 {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryChildrenExist,
			"category has child categories, delete them first",
			domainerror.ErrCategoryChildrenExist,
		)
	}

	if err := uc.categoryRepo.DeleteClearingReferences(ctx, input.CategoryID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
