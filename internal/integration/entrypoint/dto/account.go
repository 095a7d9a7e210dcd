package dto

import (
	"github.com/finance-tracker/ledger-api/internal/domain/entity"
)

// AccountRequest represents the request body for account creation and update.
type AccountRequest struct {
	Name string `json:"name" binding:"required"`
}

// AccountResponse represents a single account in API responses.
type AccountResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ToAccountResponse converts a domain Account entity to an AccountResponse DTO.
func ToAccountResponse(account *entity.Account) AccountResponse {
	return AccountResponse{
		ID:   account.ID.String(),
		Name: account.Name,
	}
}

// ToAccountListResponse converts a list of accounts.
func ToAccountListResponse(accounts []*entity.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		responses[i] = ToAccountResponse(a)
	}
	return responses
}
