// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/domain/entity"
)

// AccountRepository defines the interface for account persistence operations.
type AccountRepository interface {
	// Create creates a new account in the database.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves an account by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByBookID retrieves all accounts of a book.
	FindByBookID(ctx context.Context, bookID uuid.UUID) ([]*entity.Account, error)

	// Update updates an existing account in the database.
	Update(ctx context.Context, account *entity.Account) error

	// Delete removes an account from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountTransactions counts the transactions referencing an account.
	CountTransactions(ctx context.Context, accountID uuid.UUID) (int64, error)
}
