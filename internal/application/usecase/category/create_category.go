package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	"github.com/ledgerbook/backend/internal/domain/entity"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	BookID   uuid.UUID
	Name     string
	Type     entity.CategoryType
	ParentID *uuid.UUID
	Actor    authz.Actor
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	bookRepo     adapter.BookRepository
	gate         *authz.Gate
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository, bookRepo adapter.BookRepository, gate *authz.Gate) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
		bookRepo:     bookRepo,
		gate:         gate,
	}
}

// Execute creates a category. Children inherit the parent's type no matter
// what the caller supplies; roots must carry a valid type of their own.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	if input.Name == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameRequired,
			"category name is required",
			domainerror.ErrCategoryNameRequired,
		)
	}
	if len(input.Name) > MaxCategoryNameLength {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}

	if _, err := resolveBookForWrite(ctx, uc.bookRepo, uc.gate, input.BookID, input.Actor); err != nil {
		return nil, err
	}

	categoryType := input.Type
	if input.ParentID != nil {
		parent, err := validateParent(ctx, uc.categoryRepo, input.BookID, nil, *input.ParentID)
		if err != nil {
			return nil, err
		}
		categoryType = parent.Type
	} else if !categoryType.IsValid() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			"category type must be expense or income",
			domainerror.ErrInvalidCategoryType,
		)
	}

	category := entity.NewCategory(input.BookID, input.Name, categoryType, input.ParentID)

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{Category: category}, nil
}
