// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByBookID retrieves all categories of a book.
	FindByBookID(ctx context.Context, bookID uuid.UUID) ([]*entity.Category, error)

	// FindChildren retrieves the direct children of a category.
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]*entity.Category, error)

	// CountChildren counts the direct children of a category.
	CountChildren(ctx context.Context, parentID uuid.UUID) (int64, error)

	// Update updates an existing category in the database.
	Update(ctx context.Context, category *entity.Category) error

	// UpdateTypeCascade sets the category's type and propagates it to all
	// direct children within a single transaction.
	UpdateTypeCascade(ctx context.Context, category *entity.Category, newType entity.CategoryType) error

	// DeleteClearingReferences removes the category after clearing the
	// category reference of any transactions pointing at it, within a
	// single transaction.
	DeleteClearingReferences(ctx context.Context, id uuid.UUID) error
}
