package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	"github.com/ledgerbook/backend/internal/domain/entity"
)

// ListAccountsInput represents the input for listing a book's accounts.
type ListAccountsInput struct {
	BookID uuid.UUID
	Actor  authz.Actor
}

// ListAccountsOutput represents the output of listing a book's accounts.
type ListAccountsOutput struct {
	Accounts []*entity.Account
}

// ListAccountsUseCase handles listing the accounts of a book.
type ListAccountsUseCase struct {
	accountRepo adapter.AccountRepository
	bookRepo    adapter.BookRepository
	gate        *authz.Gate
}

// NewListAccountsUseCase creates a new ListAccountsUseCase instance.
func NewListAccountsUseCase(accountRepo adapter.AccountRepository, bookRepo adapter.BookRepository, gate *authz.Gate) *ListAccountsUseCase {
	return &ListAccountsUseCase{
		accountRepo: accountRepo,
		bookRepo:    bookRepo,
		gate:        gate,
	}
}

// Execute lists the book's accounts. Requires read access to the book.
func (uc *ListAccountsUseCase) Execute(ctx context.Context, input ListAccountsInput) (*ListAccountsOutput, error) {
	if _, err := resolveBookForRead(ctx, uc.bookRepo, uc.gate, input.BookID, input.Actor); err != nil {
		return nil, err
	}

	accounts, err := uc.accountRepo.FindByBookID(ctx, input.BookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	return &ListAccountsOutput{Accounts: accounts}, nil
}
