package repositories

import (
	"context"

	"github.com/SscSPs/penger_ledger/internal/core/domain"
)

// AccountTypeReader defines read operations for account type data
type AccountTypeReader interface {
	FindAccountTypeByID(ctx context.Context, accountTypeID string) (*domain.AccountType, error)
	FindAccountTypeByName(ctx context.Context, name string) (*domain.AccountType, error)
	ListAccountTypes(ctx context.Context, activeOnly bool) ([]domain.AccountType, error)
}

// AccountTypeWriter defines write operations for account type data
type AccountTypeWriter interface {
	SaveAccountType(ctx context.Context, accountType domain.AccountType) error
	UpdateAccountType(ctx context.Context, accountType domain.AccountType) error
	DeleteAccountType(ctx context.Context, accountTypeID string) error
}

// AccountTypeRepositoryFacade combines all account type repository interfaces
type AccountTypeRepositoryFacade interface {
	AccountTypeReader
	AccountTypeWriter
}
