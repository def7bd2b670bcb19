// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/domain/valueobject"
)

// Book represents a ledger owned by exactly one team.
//
// A book is reachable through normal access paths only while both the book
// and its owning team are active; either soft delete hides it.
type Book struct {
	ID        uuid.UUID
	TeamID    uuid.UUID
	Name      string
	Currency  string
	Lifecycle valueobject.Lifecycle
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultBookCurrency is the currency assigned when none is supplied.
const DefaultBookCurrency = "USD"

// NewBook creates a new active Book entity.
func NewBook(teamID uuid.UUID, name, currency string) *Book {
	now := time.Now().UTC()

	if currency == "" {
		currency = DefaultBookCurrency
	}

	return &Book{
		ID:        uuid.New(),
		TeamID:    teamID,
		Name:      name,
		Currency:  currency,
		Lifecycle: valueobject.ActiveLifecycle(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
