package domain

// Currency represents a supported currency. Only active currencies may be
// attached to new accounts.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// AccountType is a lookup entity classifying accounts (Savings, Checking, ...).
type AccountType struct {
	AccountTypeID string `json:"accountTypeID"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	IsActive      bool   `json:"isActive"`
	AuditFields
}
