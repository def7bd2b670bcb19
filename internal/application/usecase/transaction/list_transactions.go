package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	"github.com/ledgerbook/backend/internal/domain/entity"
)

// ListTransactionsInput represents the input for listing an account's
// transactions.
type ListTransactionsInput struct {
	AccountID uuid.UUID
	UpTo      *time.Time
	Actor     authz.Actor
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
}

// ListTransactionsUseCase handles listing the transactions of an account.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
	bookRepo        adapter.BookRepository
	gate            *authz.Gate
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository, accountRepo adapter.AccountRepository, bookRepo adapter.BookRepository, gate *authz.Gate) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		bookRepo:        bookRepo,
		gate:            gate,
	}
}

// Execute lists the account's transactions, newest first. Requires read
// access to the owning book.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if _, err := resolveAccount(ctx, uc.accountRepo, uc.bookRepo, uc.gate, input.AccountID, input.Actor, false); err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.FindByAccountID(ctx, input.AccountID, input.UpTo)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &ListTransactionsOutput{Transactions: transactions}, nil
}
