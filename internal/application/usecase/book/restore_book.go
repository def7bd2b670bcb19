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

// RestoreBookInput represents the input for restoring a soft-deleted book.
type RestoreBookInput struct {
	BookID uuid.UUID
	Actor  authz.Actor
}

// RestoreBookUseCase handles bringing a soft-deleted book back to life.
type RestoreBookUseCase struct {
	bookRepo adapter.BookRepository
	teamRepo adapter.TeamRepository
}

// NewRestoreBookUseCase creates a new RestoreBookUseCase instance.
func NewRestoreBookUseCase(bookRepo adapter.BookRepository, teamRepo adapter.TeamRepository) *RestoreBookUseCase {
	return &RestoreBookUseCase{
		bookRepo: bookRepo,
		teamRepo: teamRepo,
	}
}

// Execute restores the book. The same role that gates the soft-delete gates
// the restore: a stored admin membership on the owning team, or superadmin.
// Restoring an active book fails with a "not deleted" state error.
func (uc *RestoreBookUseCase) Execute(ctx context.Context, input RestoreBookInput) error {
	book, err := uc.bookRepo.FindBookByIDUnscoped(ctx, input.BookID)
	if err != nil {
		return fmt.Errorf("failed to find book: %w", err)
	}
	if book == nil {
		return bookNotFound()
	}

	if !input.Actor.Superadmin {
		member, err := uc.teamRepo.FindMemberByTeamAndUser(ctx, book.TeamID, input.Actor.UserID)
		if err != nil {
			return fmt.Errorf("failed to check membership: %w", err)
		}
		if member == nil {
			return bookNotFound()
		}
		if member.Role != entity.RoleAdmin {
			return authz.Denied(authz.Decision{Reason: domainerror.ReasonAdminRequired})
		}
	}

	if book.Lifecycle.IsActive() {
		return domainerror.NewBookError(
			domainerror.ErrCodeBookNotDeleted,
			"book is not deleted",
			domainerror.ErrBookNotDeleted,
		)
	}

	restored, err := uc.bookRepo.RestoreBook(ctx, input.BookID)
	if err != nil {
		return fmt.Errorf("failed to restore book: %w", err)
	}
	if !restored {
		return domainerror.NewBookError(
			domainerror.ErrCodeBookNotDeleted,
			"book is not deleted",
			domainerror.ErrBookNotDeleted,
		)
	}

	return nil
}
