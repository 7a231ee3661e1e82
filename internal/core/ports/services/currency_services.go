package services

import (
	"context"

	"github.com/SscSPs/penger_ledger/internal/core/domain"
	"github.com/SscSPs/penger_ledger/internal/dto"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest) (*domain.Currency, error)
	UpdateCurrency(ctx context.Context, currencyCode string, req dto.UpdateCurrencyRequest) (*domain.Currency, error)
	DeleteCurrency(ctx context.Context, currencyCode string) error
	ToggleCurrencyStatus(ctx context.Context, currencyCode string) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// AccountTypeReaderSvc defines read operations for account type data
type AccountTypeReaderSvc interface {
	GetAccountTypeByID(ctx context.Context, accountTypeID string) (*domain.AccountType, error)
	GetAccountTypeByName(ctx context.Context, name string) (*domain.AccountType, error)
	ListAccountTypes(ctx context.Context, activeOnly bool) ([]domain.AccountType, error)
}

// AccountTypeWriterSvc defines write operations for account type data
type AccountTypeWriterSvc interface {
	CreateAccountType(ctx context.Context, req dto.CreateAccountTypeRequest) (*domain.AccountType, error)
	UpdateAccountType(ctx context.Context, accountTypeID string, req dto.UpdateAccountTypeRequest) (*domain.AccountType, error)
	DeleteAccountType(ctx context.Context, accountTypeID string) error
	ToggleAccountTypeStatus(ctx context.Context, accountTypeID string) (*domain.AccountType, error)
}

// AccountTypeSvcFacade combines all account type service interfaces
type AccountTypeSvcFacade interface {
	AccountTypeReaderSvc
	AccountTypeWriterSvc
}
