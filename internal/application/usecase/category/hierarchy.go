// Package category contains category-related use cases.
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

const (
	// MaxCategoryNameLength is the maximum allowed length for category names.
	MaxCategoryNameLength = 100
)

// validateParent checks the hierarchy rules for attaching a category under
// parentID and returns the parent. The tree is at most two levels deep: a
// parent must be a root of the same book, and a node that already has
// children of its own can never become a child.
func validateParent(ctx context.Context, categoryRepo adapter.CategoryRepository, bookID uuid.UUID, categoryID *uuid.UUID, parentID uuid.UUID) (*entity.Category, error) {
	if categoryID != nil && *categoryID == parentID {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategorySelfParent,
			"category cannot be its own parent",
			domainerror.ErrCategorySelfParent,
		)
	}

	parent, err := categoryRepo.FindByID(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find parent category: %w", err)
	}
	if parent == nil {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeParentCategoryNotFound,
			"parent category not found",
			domainerror.ErrParentCategoryNotFound,
		)
	}

	if parent.BookID != bookID {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeParentDifferentBook,
			"parent category must belong to the same book",
			domainerror.ErrParentDifferentBook,
		)
	}

	if !parent.IsRoot() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryTooDeep,
			"categories can only be nested two levels deep",
			domainerror.ErrCategoryTooDeep,
		)
	}

	if categoryID != nil {
		children, err := categoryRepo.CountChildren(ctx, *categoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to count children: %w", err)
		}
		if children > 0 {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryHasChildren,
				"category with children cannot be nested under a parent",
				domainerror.ErrCategoryHasChildren,
			)
		}
	}

	return parent, nil
}

func categoryNotFound() error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryNotFound,
		"category not found",
		domainerror.ErrCategoryNotFound,
	)
}

// resolveBookForRead and resolveBookForWrite mirror the account package's
// helpers: unreachable books and outsiders read as not-found, visible
// viewers get the write denial.
func resolveBookForRead(ctx context.Context, bookRepo adapter.BookRepository, gate *authz.Gate, bookID uuid.UUID, actor authz.Actor) (*entity.Book, error) {
	book, err := bookRepo.FindReachableBookByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to find book: %w", err)
	}
	if book == nil {
		return nil, bookNotFound()
	}

	decision, err := gate.CanRead(ctx, book.TeamID, actor)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, bookNotFound()
	}

	return book, nil
}

func resolveBookForWrite(ctx context.Context, bookRepo adapter.BookRepository, gate *authz.Gate, bookID uuid.UUID, actor authz.Actor) (*entity.Book, error) {
	book, err := resolveBookForRead(ctx, bookRepo, gate, bookID, actor)
	if err != nil {
		return nil, err
	}

	decision, err := gate.CanWrite(ctx, book.TeamID, actor)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, authz.Denied(decision)
	}

	return book, nil
}

func bookNotFound() error {
	return domainerror.NewBookError(
		domainerror.ErrCodeBookNotFound,
		"book not found",
		domainerror.ErrBookNotFound,
	)
}
