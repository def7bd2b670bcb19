// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType represents the type of category (expense or income).
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// IsValid reports whether the category type is known.
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeExpense || t == CategoryTypeIncome
}

// Category represents a transaction category inside a book.
//
// Categories nest at most two levels deep: a category with a parent can never
// itself become a parent. A child always carries its parent's type; the type
// is independently settable only at the root.
type Category struct {
	ID        uuid.UUID
	BookID    uuid.UUID
	Name      string
	Type      CategoryType
	ParentID  *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a new Category entity.
func NewCategory(bookID uuid.UUID, name string, categoryType CategoryType, parentID *uuid.UUID) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		BookID:    bookID,
		Name:      name,
		Type:      categoryType,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsRoot reports whether the category has no parent.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}
