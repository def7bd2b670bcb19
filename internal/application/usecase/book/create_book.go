// Package book contains book-related use cases.
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

const (
	// MaxBookNameLength is the maximum allowed length for book names.
	MaxBookNameLength = 100
)

// CreateBookInput represents the input for book creation.
type CreateBookInput struct {
	TeamID   uuid.UUID
	Name     string
	Currency string
	Actor    authz.Actor
}

// CreateBookOutput represents the output of book creation.
type CreateBookOutput struct {
	Book *entity.Book
}

// CreateBookUseCase handles book creation logic.
type CreateBookUseCase struct {
	bookRepo adapter.BookRepository
	gate     *authz.Gate
}

// NewCreateBookUseCase creates a new CreateBookUseCase instance.
func NewCreateBookUseCase(bookRepo adapter.BookRepository, gate *authz.Gate) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookRepo: bookRepo,
		gate:     gate,
	}
}

// Execute creates a book under the team. Requires write access.
func (uc *CreateBookUseCase) Execute(ctx context.Context, input CreateBookInput) (*CreateBookOutput, error) {
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

	decision, err := uc.gate.CanWrite(ctx, input.TeamID, input.Actor)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, authz.Denied(decision)
	}

	book := entity.NewBook(input.TeamID, input.Name, input.Currency)

	if err := uc.bookRepo.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return &CreateBookOutput{Book: book}, nil
}
