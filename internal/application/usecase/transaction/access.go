// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	"github.com/ledgerbook/backend/internal/domain/entity"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
)

// resolveAccount loads the account and its reachable book, applying the
// given permission predicate. Hidden books, missing accounts, and outsider
// access all read as not-found.
func resolveAccount(ctx context.Context, accountRepo adapter.AccountRepository, bookRepo adapter.BookRepository, gate *authz.Gate, accountID uuid.UUID, actor authz.Actor, write bool) (*entity.Account, error) {
	account, err := accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if account == nil {
		return nil, accountNotFound()
	}

	book, err := bookRepo.FindReachableBookByID(ctx, account.BookID)
	if err != nil {
		return nil, fmt.Errorf("failed to find book: %w", err)
	}
	if book == nil {
		return nil, accountNotFound()
	}

	readable, err := gate.CanRead(ctx, book.TeamID, actor)
	if err != nil {
		return nil, err
	}
	if !readable.Allowed {
		return nil, accountNotFound()
	}

	if write {
		writable, err := gate.CanWrite(ctx, book.TeamID, actor)
		if err != nil {
			return nil, err
		}
		if !writable.Allowed {
			return nil, authz.Denied(writable)
		}
	}

	return account, nil
}

// validateCategoryRef checks that a referenced category exists and belongs
// to the same book as the transaction's account.
func validateCategoryRef(ctx context.Context, categoryRepo adapter.CategoryRepository, bookID uuid.UUID, categoryID uuid.UUID) error {
	category, err := categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to find category: %w", err)
	}
	if category == nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionCategoryNotFound,
			"category not found",
			domainerror.ErrTransactionCategoryNotFound,
		)
	}
	if category.BookID != bookID {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionCategoryWrongBook,
			"category must belong to the same book",
			domainerror.ErrTransactionCategoryWrongBook,
		)
	}
	return nil
}

func accountNotFound() error {
	return domainerror.NewAccountError(
		domainerror.ErrCodeAccountNotFound,
		"account not found",
		domainerror.ErrAccountNotFound,
	)
}

func transactionNotFound() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTransactionNotFound,
		"transaction not found",
		domainerror.ErrTransactionNotFound,
	)
}
