package book

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
)

// PurgeBookInput represents the input for permanently deleting a book.
type PurgeBookInput struct {
	BookID uuid.UUID
	Actor  authz.Actor
}

// PurgeBookUseCase handles the irreversible removal of a book and its
// contents.
type PurgeBookUseCase struct {
	bookRepo adapter.BookRepository
}

// NewPurgeBookUseCase creates a new PurgeBookUseCase instance.
func NewPurgeBookUseCase(bookRepo adapter.BookRepository) *PurgeBookUseCase {
	return &PurgeBookUseCase{bookRepo: bookRepo}
}

// Execute permanently deletes the book, cascading through its accounts,
// categories, and transactions. Superadmin only, and only from the
// soft-deleted state.
func (uc *PurgeBookUseCase) Execute(ctx context.Context, input PurgeBookInput) error {
	if err := authz.RequireSuperadmin(input.Actor); err != nil {
		return err
	}

	book, err := uc.bookRepo.FindBookByIDUnscoped(ctx, input.BookID)
	if err != nil {
		return fmt.Errorf("failed to find book: %w", err)
	}
	if book == nil {
		return bookNotFound()
	}

	if book.Lifecycle.IsActive() {
		return domainerror.NewBookError(
			domainerror.ErrCodeBookNotSoftDeleted,
			"book must be soft-deleted first",
			domainerror.ErrBookNotSoftDeleted,
		)
	}

	if err := uc.bookRepo.PurgeBook(ctx, input.BookID); err != nil {
		return fmt.Errorf("failed to purge book: %w", err)
	}

	return nil
}
