package services

import (
	"context"

	"github.com/SscSPs/penger_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerSvc applies single-account balance changes.
type LedgerSvc interface {
	// Deposit adds a positive amount to an account.
	Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.BalanceReceipt, error)

	// Withdraw takes a positive amount from an account, refusing to overdraw it.
	Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.BalanceReceipt, error)
}

// TransferSvc moves funds between two accounts as one unit.
type TransferSvc interface {
	Transfer(ctx context.Context, fromAccountID string, toAccountID string, amount decimal.Decimal) (*domain.TransferReceipt, error)
}
