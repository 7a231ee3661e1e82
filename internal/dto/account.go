package dto

import (
	"time"

	"github.com/SscSPs/penger_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	UserID         string          `json:"userID"` // Defaults to, and must match, the authenticated user
	Name           string          `json:"name" binding:"required,max=100"`
	CurrencyCode   string          `json:"currencyCode" binding:"required,currency_code"`
	AccountTypeID  string          `json:"accountTypeID" binding:"required"`
	InitialBalance decimal.Decimal `json:"initialBalance" binding:"decimal_gte0"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// The currency of an account cannot be changed.
type UpdateAccountRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=100"`
	AccountTypeID *string `json:"accountTypeID" binding:"omitempty,min=1"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	UserID        string          `json:"userID"`
	Name          string          `json:"name"`
	CurrencyCode  string          `json:"currencyCode"`
	AccountTypeID string          `json:"accountTypeID"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// AccountDetailsResponse is an account together with its currency and account type.
type AccountDetailsResponse struct {
	AccountResponse
	FormattedBalance string              `json:"formattedBalance"`
	Currency         CurrencyResponse    `json:"currency"`
	AccountType      AccountTypeResponse `json:"accountType"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		AccountNumber: acc.AccountNumber,
		UserID:        acc.UserID,
		Name:          acc.Name,
		CurrencyCode:  acc.CurrencyCode,
		AccountTypeID: acc.AccountTypeID,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
		UpdatedAt:     acc.UpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ToAccountDetailsResponse converts domain.AccountDetails; formatted is the display balance.
func ToAccountDetailsResponse(details *domain.AccountDetails, formatted string) AccountDetailsResponse {
	return AccountDetailsResponse{
		AccountResponse:  ToAccountResponse(&details.Account),
		FormattedBalance: formatted,
		Currency:         ToCurrencyResponse(&details.Currency),
		AccountType:      ToAccountTypeResponse(&details.AccountType),
	}
}

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	AccountID        string          `json:"accountID"`
	AccountNumber    string          `json:"accountNumber"`
	CurrencyCode     string          `json:"currencyCode"`
	Balance          decimal.Decimal `json:"balance"`
	FormattedBalance string          `json:"formattedBalance"`
}

// ToAccountBalanceResponse converts a domain.AccountBalance.
func ToAccountBalanceResponse(b *domain.AccountBalance) AccountBalanceResponse {
	return AccountBalanceResponse{
		AccountID:        b.AccountID,
		AccountNumber:    b.AccountNumber,
		CurrencyCode:     b.CurrencyCode,
		Balance:          b.Balance,
		FormattedBalance: b.FormattedBalance,
	}
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
