package book

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	"github.com/ledgerbook/backend/internal/domain/entity"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
)

// UpdateBookInput represents the input for updating a book.
type UpdateBookInput struct {
	BookID   uuid.UUID
	Name     string
	Currency string
	Actor    authz.Actor
}

// UpdateBookOutput represents the output of updating a book.
type UpdateBookOutput struct {
	Book *entity.Book
}

// UpdateBookUseCase handles book updates.
type UpdateBookUseCase struct {
	bookRepo adapter.BookRepository
	gate     *authz.Gate
}

// NewUpdateBookUseCase creates a new UpdateBookUseCase instance.
func NewUpdateBookUseCase(bookRepo adapter.BookRepository, gate *authz.Gate) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookRepo: bookRepo,
		gate:     gate,
	}
}

// Execute updates the book's name and currency. Requires write access, and
// the book must be reachable (book and team both active).
func (uc *UpdateBookUseCase) Execute(ctx context.Context, input UpdateBookInput) (*UpdateBookOutput, error) {
	if input.Name == "" {
		return nil, domainerror.NewBookError(
			domainerror.ErrCodeBookNameRequired,
			"book name is required",
			domainerror.ErrBookNameRequired,
		)
	}
	if len(input.Name) > MaxBookNameLength {
		return nil, domainerror.NewBookError(
			domainerror.ErrCodeBookNameTooLong,
			fmt.Sprintf("book name must not exceed %d characters", MaxBookNameLength),
			domainerror.ErrBookNameTooLong,
		)
	}

	book, err := uc.bookRepo.FindReachableBookByID(ctx, input.BookID)
	if err != nil {
		return nil, fmt.Errorf("failed to find book: %w", err)
	}
	if book == nil {
		return nil, bookNotFound()
	}

	decision, err := uc.gate.CanWrite(ctx, book.TeamID, input.Actor)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, authz.Denied(decision)
	}

	book.Name = input.Name
	if input.Currency != "" {
		book.Currency = input.Currency
	}

	if err := uc.bookRepo.UpdateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	return &UpdateBookOutput{Book: book}, nil
}
