package dto

import (
	"github.com/ponmobiz/ponmo_books_app/internal/core/domain"
)

// AccountResponse defines the data returned for a chart of accounts entry.
type AccountResponse struct {
	Code        int    `json:"code"`
	Name        string `json:"name"`
	Class       string `json:"class"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

// ListAccountsResponse wraps the full chart of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		Code:        account.Code,
		Name:        account.Name,
		Class:       string(account.Class),
		Category:    string(account.Category),
		Description: account.Description,
	}
}

// ToAccountResponses converts a slice of domain.Account to []AccountResponse.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
