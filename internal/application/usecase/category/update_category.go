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

// UpdateCategoryInput represents the input for updating a category.
//
// ParentSet distinguishes "leave the parent alone" from "set the parent to
// ParentID", where a nil ParentID with ParentSet promotes the category to a
// root. Type is optional; entity.CategoryType("") keeps the current type.
type UpdateCategoryInput struct {
	CategoryID uuid.UUID
	Name       string
	Type       entity.CategoryType
	ParentSet  bool
	ParentID   *uuid.UUID
	Actor      authz.Actor
}

// UpdateCategoryOutput represents the output of updating a category.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase handles category updates, including moves within the
// two-level hierarchy.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	bookRepo     adapter.BookRepository
	gate         *authz.Gate
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository, bookRepo adapter.BookRepository, gate *authz.Gate) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
		bookRepo:     bookRepo,
		gate:         gate,
	}
}

// Execute updates the category. A child's type always tracks its parent's;
// changing a root's type cascades to its children so the subtree never
// disagrees about type.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if category == nil {
		return nil, categoryNotFound()
	}

	if _, err := resolveBookForWrite(ctx, uc.bookRepo, uc.gate, category.BookID, input.Actor); err != nil {
		return nil, err
	}

	if input.Name != "" {
		if len(input.Name) > MaxCategoryNameLength {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNameTooLong,
				fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
				domainerror.ErrCategoryNameTooLong,
			)
		}
		category.Name = input.Name
	}

	newParentID := category.ParentID
	if input.ParentSet {
		newParentID = input.ParentID
	}

	requestedType := input.Type
	if requestedType != "" && !requestedType.IsValid() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			"category type must be expense or income",
			domainerror.ErrInvalidCategoryType,
		)
	}

	if newParentID != nil {
		// Attached under a root: the parent dictates the type.
		parent, err := validateParent(ctx, uc.categoryRepo, category.BookID, &category.ID, *newParentID)
		if err != nil {
			return nil, err
		}
		category.ParentID = newParentID
		category.Type = parent.Type

		if err := uc.categoryRepo.Update(ctx, category); err != nil {
			return nil, fmt.Errorf("failed to update category: %w", err)
		}
		return &UpdateCategoryOutput{Category: category}, nil
	}

	category.ParentID = nil

	finalType := category.Type
	if requestedType != "" {
		finalType = requestedType
	}

	if finalType != category.Type || requestedType != "" {
		// A root's type change cascades to its children.
		if err := uc.categoryRepo.UpdateTypeCascade(ctx, category, finalType); err != nil {
			return nil, fmt.Errorf("failed to update category type: %w", err)
		}
		return &UpdateCategoryOutput{Category: category}, nil
	}

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &UpdateCategoryOutput{Category: category}, nil
}
