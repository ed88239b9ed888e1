package dto

import (
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to register a new account.
type CreateAccountRequest struct {
	AccountID      string             `json:"accountID"` // Optional, generated when empty
	Code           string             `json:"code"`
	Name           string             `json:"name" binding:"required"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	Description    string             `json:"description"`
}

// AccountResponse defines the data returned for an account, including its derived balance.
type AccountResponse struct {
	AccountID      string             `json:"accountID"`
	Code           string             `json:"code"`
	Name           string             `json:"name"`
	AccountType    domain.AccountType `json:"accountType"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	Balance        decimal.Decimal    `json:"balance"`
	Description    string             `json:"description"`
	CreatedAt      time.Time          `json:"createdAt"`
	CreatedBy      string             `json:"createdBy"`
}

// ToAccountResponse converts a domain.Account and its balance to AccountResponse DTO
func ToAccountResponse(acc *domain.Account, balance decimal.Decimal) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		Code:           acc.Code,
		Name:           acc.Name,
		AccountType:    acc.AccountType,
		OpeningBalance: acc.OpeningBalance,
		Balance:        balance,
		Description:    acc.Description,
		CreatedAt:      acc.CreatedAt,
		CreatedBy:      acc.CreatedBy,
	}
}

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
