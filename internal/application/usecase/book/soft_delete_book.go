package book

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
)

// SoftDeleteBookInput represents the input for soft-deleting a book.
type SoftDeleteBookInput struct {
	BookID uuid.UUID
	Actor  authz.Actor
}

// SoftDeleteBookUseCase handles marking a book as deleted.
type SoftDeleteBookUseCase struct {
	bookRepo adapter.BookRepository
	gate     *authz.Gate
}

// NewSoftDeleteBookUseCase creates a new SoftDeleteBookUseCase instance.
func NewSoftDeleteBookUseCase(bookRepo adapter.BookRepository, gate *authz.Gate) *SoftDeleteBookUseCase {
	return &SoftDeleteBookUseCase{
		bookRepo: bookRepo,
		gate:     gate,
	}
}

// Execute soft-deletes the book. Requires the admin role on the owning team
// or superadmin. A double delete reports not-found.
func (uc *SoftDeleteBookUseCase) Execute(ctx context.Context, input SoftDeleteBookInput) error {
	book, err := uc.bookRepo.FindReachableBookByID(ctx, input.BookID)
	if err != nil {
		return fmt.Errorf("failed to find book: %w", err)
	}

	if !input.Actor.Superadmin {
		if book == nil {
			return bookNotFound()
		}
		decision, err := uc.gate.CanAdmin(ctx, book.TeamID, input.Actor)
		if err != nil {
			return err
		}
		if !decision.Allowed {
			return authz.Denied(decision)
		}
	}

	deleted, err := uc.bookRepo.SoftDeleteBook(ctx, input.BookID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to soft-delete book: %w", err)
	}
	if !deleted {
		return bookNotFound()
	}

	return nil
}
