// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/ledgerbook/backend/internal/domain/entity"
	"github.com/ledgerbook/backend/internal/domain/valueobject"
)

// CreateAccountRequest represents the request body for account creation.
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Type string `json:"type" binding:"required,oneof=debit credit"`
}

// UpdateAccountRequest represents the request body for updating an account.
type UpdateAccountRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Type string `json:"type" binding:"required,oneof=debit credit"`
}

// AccountResponse represents a single account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountListResponse represents the response for listing accounts.
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// BalanceResponse represents the derived balances of an account. Amounts are
// rendered as decimal strings to avoid float precision loss.
type BalanceResponse struct {
	Exercised string `json:"exercised"`
	Projected string `json:"projected"`
}

// ToAccountResponse converts a domain Account entity to an AccountResponse DTO.
func ToAccountResponse(account *entity.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID.String(),
		BookID:    account.BookID.String(),
		Name:      account.Name,
		Type:      string(account.Type),
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

// ToAccountListResponse converts a list of accounts to an AccountListResponse.
func ToAccountListResponse(accounts []*entity.Account) AccountListResponse {
	items := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		items[i] = ToAccountResponse(a)
	}
	return AccountListResponse{Accounts: items}
}

// ToBalanceResponse converts a Balance value object to a BalanceResponse DTO.
func ToBalanceResponse(balance valueobject.Balance) BalanceResponse {
	return BalanceResponse{
		Exercised: balance.Exercised.String(),
		Projected: balance.Projected.String(),
	}
}
