package book

import (
	"context"
	"fmt"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	"github.com/ledgerbook/backend/internal/domain/entity"
)

// ListAllBooksInput represents the input for the global book listing.
type ListAllBooksInput struct {
	Actor authz.Actor
}

// ListAllBooksOutput represents the output of the global book listing.
type ListAllBooksOutput struct {
	Books []*entity.Book
}

// ListAllBooksUseCase lists every book, soft-deleted included. Reserved to
// superadmins.
type ListAllBooksUseCase struct {
	bookRepo adapter.BookRepository
}

// NewListAllBooksUseCase creates a new ListAllBooksUseCase instance.
func NewListAllBooksUseCase(bookRepo adapter.BookRepository) *ListAllBooksUseCase {
	return &ListAllBooksUseCase{bookRepo: bookRepo}
}

// Execute returns all books regardless of lifecycle state.
func (uc *ListAllBooksUseCase) Execute(ctx context.Context, input ListAllBooksInput) (*ListAllBooksOutput, error) {
	if err := authz.RequireSuperadmin(input.Actor); err != nil {
		return nil, err
	}

	books, err := uc.bookRepo.ListAllBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list all books: %w", err)
	}

	return &ListAllBooksOutput{Books: books}, nil
}
