package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	"github.com/ledgerbook/backend/internal/domain/entity"
)

// GetAccountInput represents the input for fetching an account.
type GetAccountInput struct {
	AccountID uuid.UUID
	Actor     authz.Actor
}

// GetAccountOutput represents the output of fetching an account.
type GetAccountOutput struct {
	Account *entity.Account
}

// GetAccountUseCase handles fetching a single account.
type GetAccountUseCase struct {
	accountRepo adapter.AccountRepository
	bookRepo    adapter.BookRepository
	gate        *authz.Gate
}

// NewGetAccountUseCase creates a new GetAccountUseCase instance.
func NewGetAccountUseCase(accountRepo adapter.AccountRepository, bookRepo adapter.BookRepository, gate *authz.Gate) *GetAccountUseCase {
	return &GetAccountUseCase{
		accountRepo: accountRepo,
		bookRepo:    bookRepo,
		gate:        gate,
	}
}

// Execute fetches the account. Requires read access to the owning book.
func (uc *GetAccountUseCase) Execute(ctx context.Context, input GetAccountInput) (*GetAccountOutput, error) {
	account, err := uc.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if account == nil {
		return nil, accountNotFound()
	}

	if _, err := resolveBookForRead(ctx, uc.bookRepo, uc.gate, account.BookID, input.Actor); err != nil {
		return nil, err
	}

	return &GetAccountOutput{Account: account}, nil
}
