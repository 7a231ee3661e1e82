package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a balance-holding account owned by a user, denominated in one currency.
// Balance is mutated only through the ledger and never drops below zero.
type Account struct {
	AccountID     string          `json:"accountID"`     // Primary Key (UUID)
	AccountNumber string          `json:"accountNumber"` // Externally facing, unique across all accounts
	UserID        string          `json:"userID"`        // Owning user
	Name          string          `json:"name"`
	CurrencyCode  string          `json:"currencyCode"`  // FK -> currencies.code, immutable after creation
	AccountTypeID string          `json:"accountTypeID"` // FK -> account_types.account_type_id
	Balance       decimal.Decimal `json:"balance"`
	AuditFields
}

// Balances are stored as NUMERIC(19,4).
const BalanceScale = 4

// MaxBalance is the exclusive upper bound of a stored balance.
var MaxBalance = decimal.New(1, 15)

// FitsBalanceScale reports whether amount has no digits beyond BalanceScale.
func FitsBalanceScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(BalanceScale))
}

// CanWithdraw reports whether amount can be taken from the account without overdraft.
func (a Account) CanWithdraw(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}

// AccountDetails is an account together with its explicitly fetched reference rows.
type AccountDetails struct {
	Account     Account     `json:"account"`
	Currency    Currency    `json:"currency"`
	AccountType AccountType `json:"accountType"`
}

// AccountBalance is the balance of an account with its display form.
type AccountBalance struct {
	AccountID        string          `json:"accountID"`
	AccountNumber    string          `json:"accountNumber"`
	CurrencyCode     string          `json:"currencyCode"`
	Balance          decimal.Decimal `json:"balance"`
	FormattedBalance string          `json:"formattedBalance"`
}
