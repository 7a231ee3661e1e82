package utils

import (
	"regexp"

	"github.com/SscSPs/penger_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DisplayPrecision is the number of fractional digits used when rendering balances.
const DisplayPrecision = 2

// FormatWithCurrency renders an amount prefixed by the currency symbol.
// Example: 1234.5 with USD returns "$1234.50"
func FormatWithCurrency(amount decimal.Decimal, currency domain.Currency) string {
	return currency.Symbol + FormatWithPrecision(amount, DisplayPrecision)
}

// FormatWithPrecision formats an amount with the given precision, padding with zeros.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// IsCurrencyCode reports whether code is an ISO 4217 style code: three upper-case letters.
func IsCurrencyCode(code string) bool {
	return currencyCodePattern.MatchString(code)
}
