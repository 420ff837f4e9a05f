package dto

import (
	"time"

	"github.com/finbook/finbook_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=CHECKING SAVINGS WALLET CREDIT_CARD INVESTMENT OTHER"`
	Institution    string             `json:"institution"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	Notes          string             `json:"notes"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided.
// BalanceOverride sets the current balance directly, bypassing the derived
// value; it is an administrative escape hatch and is applied last.
type UpdateAccountRequest struct {
	Name            *string             `json:"name"`
	AccountType     *domain.AccountType `json:"accountType" binding:"omitempty,oneof=CHECKING SAVINGS WALLET CREDIT_CARD INVESTMENT OTHER"`
	Institution     *string             `json:"institution"`
	OpeningBalance  *decimal.Decimal    `json:"openingBalance"`
	Notes           *string             `json:"notes"`
	BalanceOverride *decimal.Decimal    `json:"balanceOverride"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string             `json:"accountID"`
	Name           string             `json:"name"`
	AccountType    domain.AccountType `json:"accountType"`
	Institution    string             `json:"institution"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	CurrentBalance decimal.Decimal    `json:"currentBalance"`
	Notes          string             `json:"notes"`
	CreatedAt      time.Time          `json:"createdAt"`
	LastUpdatedAt  time.Time          `json:"lastUpdatedAt"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		Name:           acc.Name,
		AccountType:    acc.AccountType,
		Institution:    acc.Institution,
		OpeningBalance: acc.OpeningBalance,
		CurrentBalance: acc.CurrentBalance,
		Notes:          acc.Notes,
		CreatedAt:      acc.CreatedAt,
		LastUpdatedAt:  acc.LastUpdatedAt,
	}
}

// ToListAccountsResponse converts a slice of domain.Account to the list DTO.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return ListAccountsResponse{Accounts: res}
}
