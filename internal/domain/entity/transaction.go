// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents a financial transaction on an account.
//
// Amount is signed: negative for expenses, positive for income. Exercised
// marks a cleared/settled transaction; unexercised transactions only count
// towards the projected balance. A referenced category must belong to the
// same book as the transaction's account.
type Transaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	CategoryID  *uuid.UUID
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Exercised   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	accountID uuid.UUID,
	categoryID *uuid.UUID,
	description string,
	amount decimal.Decimal,
	date time.Time,
	exercised bool,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		AccountID:   accountID,
		CategoryID:  categoryID,
		Description: description,
		Amount:      amount,
		Date:        date,
		Exercised:   exercised,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
