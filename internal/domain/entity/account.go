// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AccountType represents the type of account (debit or credit).
type AccountType string

const (
	AccountTypeDebit  AccountType = "debit"
	AccountTypeCredit AccountType = "credit"
)

// IsValid reports whether the account type is known.
func (t AccountType) IsValid() bool {
	return t == AccountTypeDebit || t == AccountTypeCredit
}

// Account represents an account inside a book. Accounts are hard-deleted and
// cannot be removed while transactions still reference them.
type Account struct {
	ID        uuid.UUID
	BookID    uuid.UUID
	Name      string
	Type      AccountType
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAccount creates a new Account entity.
func NewAccount(bookID uuid.UUID, name string, accountType AccountType) *Account {
	now := time.Now().UTC()

	return &Account{
		ID:        uuid.New(),
		BookID:    bookID,
		Name:      name,
		Type:      accountType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
