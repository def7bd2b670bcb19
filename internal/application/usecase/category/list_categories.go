package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	"github.com/ledgerbook/backend/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing a book's categories.
type ListCategoriesInput struct {
	BookID uuid.UUID
	Actor  authz.Actor
}

// ListCategoriesOutput represents the output of listing a book's categories.
type ListCategoriesOutput struct {
	Categories []*entity.Category
}

// ListCategoriesUseCase handles listing the categories of a book.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
	bookRepo     adapter.BookRepository
	gate         *authz.Gate
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository, bookRepo adapter.BookRepository, gate *authz.Gate) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
		bookRepo:     bookRepo,
		gate:         gate,
	}
}

// Execute lists the book's categories, roots first. Requires read access.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	if _, err := resolveBookForRead(ctx, uc.bookRepo, uc.gate, input.BookID, input.Actor); err != nil {
		return nil, err
	}

	categories, err := uc.categoryRepo.FindByBookID(ctx, input.BookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return &ListCategoriesOutput{Categories: categories}, nil
}
