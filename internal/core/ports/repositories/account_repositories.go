package repositories

import (
	"context"

	"github.com/SscSPs/penger_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its externally facing account number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// ListAccounts retrieves a page of accounts ordered by creation time.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// ListAccountsByUser retrieves every account owned by a user.
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)

	// CountAccountsByCurrency counts accounts denominated in a currency.
	CountAccountsByCurrency(ctx context.Context, currencyCode string) (int, error)

	// CountAccountsByType counts accounts of an account type.
	CountAccountsByType(ctx context.Context, accountTypeID string) (int, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. A clash on account id or account number
	// is reported as apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's descriptive fields (name, type).
	// Balance and currency are never touched.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines operations that run inside a caller supplied transaction.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them for the rest of the
	// transaction. Locks are taken in ascending account id order. Returns
	// apperrors.ErrNotFound if any id is missing.
	FindAccountsByIDsForUpdate(ctx context.Context, tx Tx, accountIDs []string) (map[string]domain.Account, error)

	// SaveBalanceInTx writes account.Balance and returns the stored balance.
	SaveBalanceInTx(ctx context.Context, tx Tx, account domain.Account) (decimal.Decimal, error)

	// DeleteAccountInTx removes a locked account.
	DeleteAccountInTx(ctx context.Context, tx Tx, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
