// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/ledgerbook/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
// Type may be omitted for child categories, which always inherit it from
// their parent.
type CreateCategoryRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=100"`
	Type     string  `json:"type" binding:"omitempty,oneof=expense income"`
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
}

// UpdateCategoryRequest represents the request body for updating a category.
// The parent field is tri-state: absent leaves the parent untouched, an
// explicit null promotes the category to root.
type UpdateCategoryRequest struct {
	Name     string       `json:"name" binding:"required,min=1,max=100"`
	Type     string       `json:"type" binding:"omitempty,oneof=expense income"`
	ParentID NullableUUID `json:"parent_id"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	ParentID  *string   `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(category *entity.Category) CategoryResponse {
	response := CategoryResponse{
		ID:        category.ID.String(),
		BookID:    category.BookID.String(),
		Name:      category.Name,
		Type:      string(category.Type),
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
	if category.ParentID != nil {
		parentID := category.ParentID.String()
		response.ParentID = &parentID
	}
	return response
}

// ToCategoryListResponse converts a list of categories to a CategoryListResponse.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	items := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		items[i] = ToCategoryResponse(c)
	}
	return CategoryListResponse{Categories: items}
}
