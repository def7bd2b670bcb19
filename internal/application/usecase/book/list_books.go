package book

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	"github.com/ledgerbook/backend/internal/domain/entity"
)

// ListBooksInput represents the input for listing a team's books.
type ListBooksInput struct {
	TeamID uuid.UUID
	Actor  authz.Actor
}

// ListBooksOutput represents the output of listing a team's books.
type ListBooksOutput struct {
	Books []*entity.Book
}

// ListBooksUseCase handles listing the active books of a team.
type ListBooksUseCase struct {
	bookRepo adapter.BookRepository
	gate     *authz.Gate
}

// NewListBooksUseCase creates a new ListBooksUseCase instance.
func NewListBooksUseCase(bookRepo adapter.BookRepository, gate *authz.Gate) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookRepo: bookRepo,
		gate:     gate,
	}
}

// Execute lists the team's active books. Soft-deleted books are omitted, and
// outsiders get not-found so team existence never leaks.
func (uc *ListBooksUseCase) Execute(ctx context.Context, input ListBooksInput) (*ListBooksOutput, error) {
	decision, err := uc.gate.CanRead(ctx, input.TeamID, input.Actor)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, bookNotFound()
	}

	books, err := uc.bookRepo.FindBooksByTeamID(ctx, input.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	return &ListBooksOutput{Books: books}, nil
}
