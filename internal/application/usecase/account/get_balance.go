package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	"github.com/ledgerbook/backend/internal/domain/valueobject"
)

// GetBalanceInput represents the input for computing an account balance.
type GetBalanceInput struct {
	AccountID uuid.UUID
	UpTo      *time.Time
	Actor     authz.Actor
}

// GetBalanceOutput represents the output of computing an account balance.
type GetBalanceOutput struct {
	Balance valueobject.Balance
}

// GetBalanceUseCase computes the exercised and projected balances of an
// account.
type GetBalanceUseCase struct {
	accountRepo     adapter.AccountRepository
	bookRepo        adapter.BookRepository
	transactionRepo adapter.TransactionRepository
	gate            *authz.Gate
}

// NewGetBalanceUseCase creates a new GetBalanceUseCase instance.
func NewGetBalanceUseCase(accountRepo adapter.AccountRepository, bookRepo adapter.BookRepository, transactionRepo adapter.TransactionRepository, gate *authz.Gate) *GetBalanceUseCase {
	return &GetBalanceUseCase{
		accountRepo:     accountRepo,
		bookRepo:        bookRepo,
		transactionRepo: transactionRepo,
		gate:            gate,
	}
}

// Execute sums the account's transactions. The projected balance includes
// every transaction; the exercised balance only the cleared ones. When UpTo
// is set, transactions dated after it are excluded from both sums.
func (uc *GetBalanceUseCase) Execute(ctx context.Context, input GetBalanceInput) (*GetBalanceOutput, error) {
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

	transactions, err := uc.transactionRepo.FindByAccountID(ctx, input.AccountID, input.UpTo)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	balance := valueobject.ZeroBalance()
	for _, t := range transactions {
		balance = balance.Accumulate(t.Amount, t.Exercised)
	}

	return &GetBalanceOutput{Balance: balance}, nil
}
