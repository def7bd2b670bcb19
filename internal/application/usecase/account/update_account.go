package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	"github.com/ledgerbook/backend/internal/domain/entity"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
)

// UpdateAccountInput represents the input for updating an account.
type UpdateAccountInput struct {
	AccountID uuid.UUID
	Name      string
	Type      entity.AccountType
	Actor     authz.Actor
}

// UpdateAccountOutput represents the output of updating an account.
type UpdateAccountOutput struct {
	Account *entity.Account
}

// UpdateAccountUseCase handles account updates.
type UpdateAccountUseCase struct {
	accountRepo adapter.AccountRepository
	bookRepo    adapter.BookRepository
	gate        *authz.Gate
}

// NewUpdateAccountUseCase creates a new UpdateAccountUseCase instance.
func NewUpdateAccountUseCase(accountRepo adapter.AccountRepository, bookRepo adapter.BookRepository, gate *authz.Gate) *UpdateAccountUseCase {
	return &UpdateAccountUseCase{
		accountRepo: accountRepo,
		bookRepo:    bookRepo,
		gate:        gate,
	}
}

// Execute updates the account's name and type. Requires write access to the
// owning book.
func (uc *UpdateAccountUseCase) Execute(ctx context.Context, input UpdateAccountInput) (*UpdateAccountOutput, error) {
	if input.Name == "" {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountNameRequired,
			"account name is required",
			domainerror.ErrAccountNameRequired,
		)
	}
	if !input.Type.IsValid() {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidAccountType,
			"account type must be debit or credit",
			domainerror.ErrInvalidAccountType,
		)
	}

	account, err := uc.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if account == nil {
		return nil, accountNotFound()
	}

	if _, err := resolveBookForWrite(ctx, uc.bookRepo, uc.gate, account.BookID, input.Actor); err != nil {
		return nil, err
	}

	account.Name = input.Name
	account.Type = input.Type

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return &UpdateAccountOutput{Account: account}, nil
}
