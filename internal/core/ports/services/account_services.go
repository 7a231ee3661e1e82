package services

import (
	"context"

	"github.com/SscSPs/penger_ledger/internal/core/domain"
	"github.com/SscSPs/penger_ledger/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount retrieves an account with its currency and account type.
	GetAccount(ctx context.Context, accountID string) (*domain.AccountDetails, error)

	// GetAccountByNumber retrieves an account by its account number, with its currency and account type.
	GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.AccountDetails, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// ListAccountsByUser retrieves every account owned by a user.
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)

	// GetBalance retrieves the balance of an account with its display form.
	GetBalance(ctx context.Context, accountID string) (*domain.AccountBalance, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount opens a new account with a freshly generated account number.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount changes the name and/or account type of an account.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes an account whose balance is zero.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
