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

// GetBookInput represents the input for fetching a book.
type GetBookInput struct {
	BookID uuid.UUID
	Actor  authz.Actor
}

// GetBookOutput represents the output of fetching a book.
type GetBookOutput struct {
	Book *entity.Book
}

// GetBookUseCase handles fetching a single book.
type GetBookUseCase struct {
	bookRepo adapter.BookRepository
	gate     *authz.Gate
}

// NewGetBookUseCase creates a new GetBookUseCase instance.
func NewGetBookUseCase(bookRepo adapter.BookRepository, gate *authz.Gate) *GetBookUseCase {
	return &GetBookUseCase{
		bookRepo: bookRepo,
		gate:     gate,
	}
}

// Execute fetches the book. Members see it only while both the book and its
// team are active. Superadmins fetch by ID regardless of lifecycle state and
// see the deletion timestamp.
func (uc *GetBookUseCase) Execute(ctx context.Context, input GetBookInput) (*GetBookOutput, error) {
	if input.Actor.Superadmin {
		book, err := uc.bookRepo.FindBookByIDUnscoped(ctx, input.BookID)
		if err != nil {
			return nil, fmt.Errorf("failed to find book: %w", err)
		}
		if book == nil {
			return nil, bookNotFound()
		}
		return &GetBookOutput{Book: book}, nil
	}

	book, err := uc.bookRepo.FindReachableBookByID(ctx, input.BookID)
	if err != nil {
		return nil, fmt.Errorf("failed to find book: %w", err)
	}
	if book == nil {
		return nil, bookNotFound()
	}

	decision, err := uc.gate.CanRead(ctx, book.TeamID, input.Actor)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, bookNotFound()
	}

	return &GetBookOutput{Book: book}, nil
}

func bookNotFound() error {
	return domainerror.NewBookError(
		domainerror.ErrCodeBookNotFound,
		"book not found",
		domainerror.ErrBookNotFound,
	)
}
