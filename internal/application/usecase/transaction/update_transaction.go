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

// UpdateTransactionInput represents the input for updating a transaction.
//
// CategorySet distinguishes "leave the category alone" from "set the
// category to CategoryID", where a nil CategoryID with CategorySet clears
// the reference.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	Description   string
	Amount        decimal.Decimal
	Date          time.Time
	Exercised     bool
	CategorySet   bool
	CategoryID    *uuid.UUID
	Actor         authz.Actor
}

// UpdateTransactionOutput represents the output of updating a transaction.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase handles transaction updates.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
	categoryRepo    adapter.CategoryRepository
	bookRepo        adapter.BookRepository
	gate            *authz.Gate
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(transactionRepo adapter.TransactionRepository, accountRepo adapter.AccountRepository, categoryRepo adapter.CategoryRepository, bookRepo adapter.BookRepository, gate *authz.Gate) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		bookRepo:        bookRepo,
		gate:            gate,
	}
}

// Execute updates the transaction. Requires write access to the owning book.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	transaction, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	if transaction == nil {
		return nil, transactionNotFound()
	}

	account, err := resolveAccount(ctx, uc.accountRepo, uc.bookRepo, uc.gate, transaction.AccountID, input.Actor, true)
	if err != nil {
		return nil, err
	}

	if input.CategorySet {
		if input.CategoryID != nil {
			if err := validateCategoryRef(ctx, uc.categoryRepo, account.BookID, *input.CategoryID); err != nil {
				return nil, err
			}
		}
		transaction.CategoryID = input.CategoryID
	}

	transaction.Description = input.Description
	transaction.Amount = input.Amount
	transaction.Date = input.Date
	transaction.Exercised = input.Exercised

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &UpdateTransactionOutput{Transaction: transaction}, nil
}
