// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/ledgerbook/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction
// creation. Amount is a signed decimal string, negative for expenses.
type CreateTransactionRequest struct {
	Description string  `json:"description" binding:"required,min=1,max=255"`
	Amount      string  `json:"amount" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Exercised   bool    `json:"exercised"`
	CategoryID  *string `json:"category_id" binding:"omitempty,uuid"`
}

// UpdateTransactionRequest represents the request body for updating a
// transaction. The category field is tri-state: absent leaves the category
// untouched, an explicit null clears it.
type UpdateTransactionRequest struct {
	Description string       `json:"description" binding:"required,min=1,max=255"`
	Amount      string       `json:"amount" binding:"required"`
	Date        string       `json:"date" binding:"required"`
	Exercised   bool         `json:"exercised"`
	CategoryID  NullableUUID `json:"category_id"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	CategoryID  *string   `json:"category_id,omitempty"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Date        string    `json:"date"`
	Exercised   bool      `json:"exercised"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse converts a domain Transaction entity to a DTO.
func ToTransactionResponse(txn *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:          txn.ID.String(),
		AccountID:   txn.AccountID.String(),
		Description: txn.Description,
		Amount:      txn.Amount.String(),
		Date:        txn.Date.Format("2006-01-02"),
		Exercised:   txn.Exercised,
		CreatedAt:   txn.CreatedAt,
		UpdatedAt:   txn.UpdatedAt,
	}
	if txn.CategoryID != nil {
		categoryID := txn.CategoryID.String()
		response.CategoryID = &categoryID
	}
	return response
}

// ToTransactionListResponse converts a list of transactions to a DTO.
func ToTransactionListResponse(txns []*entity.Transaction) TransactionListResponse {
	items := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		items[i] = ToTransactionResponse(t)
	}
	return TransactionListResponse{Transactions: items}
}
