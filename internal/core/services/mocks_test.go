package services_test

import (
	"context"

	"github.com/SscSPs/penger_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/penger_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock Tx ---
type stubTx struct{}

func (stubTx) Commit(context.Context) error   { return nil }
func (stubTx) Rollback(context.Context) error { return nil }

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CountAccountsByCurrency(ctx context.Context, currencyCode string) (int, error) {
	args := m.Called(ctx, currencyCode)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) CountAccountsByType(ctx context.Context, accountTypeID string) (int, error) {
	args := m.Called(ctx, accountTypeID)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx portsrepo.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveBalanceInTx(ctx context.Context, tx portsrepo.Tx, account domain.Account) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, account)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountRepository) DeleteAccountInTx(ctx context.Context, tx portsrepo.Tx, accountID string) error {
	return m.Called(ctx, tx, accountID).Error(0)
}

func (m *MockAccountRepository) Begin(ctx context.Context) (portsrepo.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(portsrepo.Tx), args.Error(1)
}

func (m *MockAccountRepository) Commit(ctx context.Context, tx portsrepo.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockAccountRepository) Rollback(ctx context.Context, tx portsrepo.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

var _ portsrepo.AccountRepositoryWithTx = (*MockAccountRepository)(nil)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	return m.Called(ctx, currency).Error(0)
}

func (m *MockCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	return m.Called(ctx, currency).Error(0)
}

func (m *MockCurrencyRepository) DeleteCurrency(ctx context.Context, currencyCode string) error {
	return m.Called(ctx, currencyCode).Error(0)
}

var _ portsrepo.CurrencyRepositoryFacade = (*MockCurrencyRepository)(nil)

// --- Mock AccountTypeRepository ---
type MockAccountTypeRepository struct {
	mock.Mock
}

func (m *MockAccountTypeRepository) FindAccountTypeByID(ctx context.Context, accountTypeID string) (*domain.AccountType, error) {
	args := m.Called(ctx, accountTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountType), args.Error(1)
}

func (m *MockAccountTypeRepository) FindAccountTypeByName(ctx context.Context, name string) (*domain.AccountType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountType), args.Error(1)
}

func (m *MockAccountTypeRepository) ListAccountTypes(ctx context.Context, activeOnly bool) ([]domain.AccountType, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountType), args.Error(1)
}

func (m *MockAccountTypeRepository) SaveAccountType(ctx context.Context, accountType domain.AccountType) error {
	return m.Called(ctx, accountType).Error(0)
}

func (m *MockAccountTypeRepository) UpdateAccountType(ctx context.Context, accountType domain.AccountType) error {
	return m.Called(ctx, accountType).Error(0)
}

func (m *MockAccountTypeRepository) DeleteAccountType(ctx context.Context, accountTypeID string) error {
	return m.Called(ctx, accountTypeID).Error(0)
}

var _ portsrepo.AccountTypeRepositoryFacade = (*MockAccountTypeRepository)(nil)
