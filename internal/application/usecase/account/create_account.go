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

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	BookID uuid.UUID
	Name   string
	Type   entity.AccountType
	Actor  authz.Actor
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account *entity.Account
}

// CreateAccountUseCase handles account creation logic.
type CreateAccountUseCase struct {
	accountRepo adapter.AccountRepository
	bookRepo    adapter.BookRepository
	gate        *authz.Gate
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(accountRepo adapter.AccountRepository, bookRepo adapter.BookRepository, gate *authz.Gate) *CreateAccountUseCase {
	return &CreateAccountUseCase{
		accountRepo: accountRepo,
		bookRepo:    bookRepo,
		gate:        gate,
	}
}

// Execute creates an account in the book. Requires write access.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
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

	if _, err := resolveBookForWrite(ctx, uc.bookRepo, uc.gate, input.BookID, input.Actor); err != nil {
		return nil, err
	}

	account := entity.NewAccount(input.BookID, input.Name, input.Type)

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &CreateAccountOutput{Account: account}, nil
}
