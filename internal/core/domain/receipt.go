package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceReceipt is returned by deposit and withdraw.
type BalanceReceipt struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	CurrencyCode  string          `json:"currencyCode"`
	Amount        decimal.Decimal `json:"amount"`
	Balance       decimal.Decimal `json:"balance"`
	Timestamp     time.Time       `json:"timestamp"`
}

// TransferReceipt summarizes a committed transfer.
type TransferReceipt struct {
	FromAccountNumber string          `json:"fromAccountNumber"`
	ToAccountNumber   string          `json:"toAccountNumber"`
	Amount            decimal.Decimal `json:"amount"`
	CurrencyCode      string          `json:"currencyCode"`
	Timestamp         time.Time       `json:"timestamp"`
}

// OTPVerification is returned by a successful OTP verification.
type OTPVerification struct {
	Purpose    string    `json:"purpose"`
	VerifiedAt time.Time `json:"verifiedAt"`
}
