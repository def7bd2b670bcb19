// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/ledgerbook/backend/internal/domain/entity"
)

// CreateBookRequest represents the request body for book creation.
type CreateBookRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Currency string `json:"currency" binding:"omitempty,len=3"`
}

// UpdateBookRequest represents the request body for updating a book.
type UpdateBookRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Currency string `json:"currency" binding:"omitempty,len=3"`
}

// BookResponse represents a single book in API responses.
type BookResponse struct {
	ID        string     `json:"id"`
	TeamID    string     `json:"team_id"`
	Name      string     `json:"name"`
	Currency  string     `json:"currency"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// BookListResponse represents the response for listing books.
type BookListResponse struct {
	Books []BookResponse `json:"books"`
}

// ToBookResponse converts a domain Book entity to a BookResponse DTO.
func ToBookResponse(book *entity.Book) BookResponse {
	return BookResponse{
		ID:        book.ID.String(),
		TeamID:    book.TeamID.String(),
		Name:      book.Name,
		Currency:  book.Currency,
		DeletedAt: book.Lifecycle.DeletedAt(),
		CreatedAt: book.CreatedAt,
		UpdatedAt: book.UpdatedAt,
	}
}

// ToBookListResponse converts a list of books to a BookListResponse.
func ToBookListResponse(books []*entity.Book) BookListResponse {
	items := make([]BookResponse, len(books))
	for i, b := range books {
		items[i] = ToBookResponse(b)
	}
	return BookListResponse{Books: items}
}
