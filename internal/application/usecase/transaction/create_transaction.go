package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	"github.com/ledgerbook/backend/internal/domain/entity"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	AccountID   uuid.UUID
	CategoryID  *uuid.UUID
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Exercised   bool
	Actor       authz.Actor
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
	categoryRepo    adapter.CategoryRepository
	bookRepo        adapter.BookRepository
	gate            *authz.Gate
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(transactionRepo adapter.TransactionRepository, accountRepo adapter.AccountRepository, categoryRepo adapter.CategoryRepository, bookRepo adapter.BookRepository, gate *authz.Gate) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		bookRepo:        bookRepo,
		gate:            gate,
	}
}

// Execute creates a transaction on the account. Requires write access; a
// referenced category must belong to the account's book.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	account, err := resolveAccount(ctx, uc.accountRepo, uc.bookRepo, uc.gate, input.AccountID, input.Actor, true)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if err := validateCategoryRef(ctx, uc.categoryRepo, account.BookID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	transaction := entity.NewTransaction(
		input.AccountID,
		input.CategoryID,
		input.Description,
		input.Amount,
		input.Date,
		input.Exercised,
	)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &CreateTransactionOutput{Transaction: transaction}, nil
}
