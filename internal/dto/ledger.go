package dto

import (
	"time"

	"github.com/SscSPs/penger_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountRequest is the body of deposit and withdraw calls.
// Positivity is checked by the ledger so that it reports INVALID_AMOUNT.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" example:"25.00"`
}

// TransferRequest moves Amount from one account to another.
type TransferRequest struct {
	FromAccountID string          `json:"fromAccountID" binding:"required"`
	ToAccountID   string          `json:"toAccountID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" example:"30.00"`
}

// BalanceReceiptResponse is returned by deposit and withdraw.
type BalanceReceiptResponse struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	CurrencyCode  string          `json:"currencyCode"`
	Amount        decimal.Decimal `json:"amount"`
	Balance       decimal.Decimal `json:"balance"`
	Timestamp     time.Time       `json:"timestamp"`
}

// ToBalanceReceiptResponse converts a domain.BalanceReceipt.
func ToBalanceReceiptResponse(r *domain.BalanceReceipt) BalanceReceiptResponse {
	return BalanceReceiptResponse{
		AccountID:     r.AccountID,
		AccountNumber: r.AccountNumber,
		CurrencyCode:  r.CurrencyCode,
		Amount:        r.Amount,
		Balance:       r.Balance,
		Timestamp:     r.Timestamp,
	}
}

// TransferReceiptResponse is returned by a committed transfer.
type TransferReceiptResponse struct {
	FromAccountNumber string          `json:"fromAccountNumber"`
	ToAccountNumber   string          `json:"toAccountNumber"`
	Amount            decimal.Decimal `json:"amount"`
	CurrencyCode      string          `json:"currencyCode"`
	Timestamp         time.Time       `json:"timestamp"`
}

// ToTransferReceiptResponse converts a domain.TransferReceipt.
func ToTransferReceiptResponse(r *domain.TransferReceipt) TransferReceiptResponse {
	return TransferReceiptResponse{
		FromAccountNumber: r.FromAccountNumber,
		ToAccountNumber:   r.ToAccountNumber,
		Amount:            r.Amount,
		CurrencyCode:      r.CurrencyCode,
		Timestamp:         r.Timestamp,
	}
}
