package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
)

// DeleteAccountInput represents the input for deleting an account.
type DeleteAccountInput struct {
	AccountID uuid.UUID
	Actor     authz.Actor
}

// DeleteAccountUseCase handles account deletion.
type DeleteAccountUseCase struct {
	accountRepo adapter.AccountRepository
	bookRepo    adapter.BookRepository
	gate        *authz.Gate
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(accountRepo adapter.AccountRepository, bookRepo adapter.BookRepository, gate *authz.Gate) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		accountRepo: accountRepo,
		bookRepo:    bookRepo,
		gate:        gate,
	}
}

// Execute deletes the account. An account that still has transactions is
// protected: the caller must delete or move them first.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) error {
	account, err := uc.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		return fmt.Errorf("failed to find account: %w", err)
	}
	if account == nil {
		return accountNotFound()
	}

	if _, err := resolveBookForWrite(ctx, uc.bookRepo, uc.gate, account.BookID, input.Actor); err != nil {
		return err
	}

	count, err := uc.accountRepo.CountTransactions(ctx, input.AccountID)
	if err != nil {
		return fmt.Errorf("failed to count transactions: %w", err)
	}
	if count > 0 {
		return domainerror.NewAccountError(
			domainerror.ErrCodeAccountHasTransactions,
			"account has transactions, delete them first",
			domainerror.ErrAccountHasTransactions,
		)
	}

	if err := uc.accountRepo.Delete(ctx, input.AccountID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return nil
}
