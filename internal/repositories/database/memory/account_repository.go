package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/penger_ledger/internal/apperrors"
	"github.com/SscSPs/penger_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/penger_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// AccountRepository is the in-memory account store.
type AccountRepository struct {
	transactionManager
}

// NewAccountRepository creates a new repository for account data.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{transactionManager{store: store}}
}

var _ portsrepo.AccountRepositoryWithTx = (*AccountRepository)(nil)

func (r *AccountRepository) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	acc, ok := r.store.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

func (r *AccountRepository) FindAccountByNumber(_ context.Context, accountNumber string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, acc := range r.store.accounts {
		if acc.AccountNumber == accountNumber {
			found := acc
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *AccountRepository) sortedAccounts(filter func(domain.Account) bool) []domain.Account {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	accounts := make([]domain.Account, 0, len(r.store.accounts))
	for _, acc := range r.store.accounts {
		if filter == nil || filter(acc) {
			accounts = append(accounts, acc)
		}
	}
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].AccountID < accounts[j].AccountID
		}
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
	return accounts
}

func (r *AccountRepository) ListAccounts(_ context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	accounts := r.sortedAccounts(nil)
	if offset >= len(accounts) {
		return []domain.Account{}, nil
	}
	end := offset + limit
	if end > len(accounts) {
		end = len(accounts)
	}
	return accounts[offset:end], nil
}

func (r *AccountRepository) ListAccountsByUser(_ context.Context, userID string) ([]domain.Account, error) {
	return r.sortedAccounts(func(a domain.Account) bool { return a.UserID == userID }), nil
}

func (r *AccountRepository) CountAccountsByCurrency(_ context.Context, currencyCode string) (int, error) {
	return len(r.sortedAccounts(func(a domain.Account) bool { return a.CurrencyCode == currencyCode })), nil
}

func (r *AccountRepository) CountAccountsByType(_ context.Context, accountTypeID string) (int, error) {
	return len(r.sortedAccounts(func(a domain.Account) bool { return a.AccountTypeID == accountTypeID })), nil
}

func (r *AccountRepository) SaveAccount(_ context.Context, account domain.Account) error {
	r.store.txLock.Lock()
	defer r.store.txLock.Unlock()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, account.AccountID)
	}
	for _, acc := range r.store.accounts {
		if acc.AccountNumber == account.AccountNumber {
			return fmt.Errorf("%w: account number %s already exists", apperrors.ErrDuplicate, account.AccountNumber)
		}
	}
	r.store.accounts[account.AccountID] = account
	return nil
}

func (r *AccountRepository) UpdateAccount(_ context.Context, account domain.Account) error {
	r.store.txLock.Lock()
	defer r.store.txLock.Unlock()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.accounts[account.AccountID]
	if !ok {
		return apperrors.ErrNotFound
	}
	existing.Name = account.Name
	existing.AccountTypeID = account.AccountTypeID
	existing.UpdatedAt = account.UpdatedAt
	r.store.accounts[account.AccountID] = existing
	return nil
}

func (r *AccountRepository) FindAccountsByIDsForUpdate(_ context.Context, tx portsrepo.Tx, accountIDs []string) (map[string]domain.Account, error) {
	mtx, err := asMemTx(tx)
	if err != nil {
		return nil, err
	}
	accountsMap := make(map[string]domain.Account, len(accountIDs))
	missing := []string{}
	for _, id := range accountIDs {
		acc, ok := mtx.account(id)
		if !ok {
			missing = append(missing, id)
			continue
		}
		accountsMap[id] = acc
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: could not find or lock all requested accounts, missing: %v", apperrors.ErrNotFound, missing)
	}
	return accountsMap, nil
}

func (r *AccountRepository) SaveBalanceInTx(_ context.Context, tx portsrepo.Tx, account domain.Account) (decimal.Decimal, error) {
	mtx, err := asMemTx(tx)
	if err != nil {
		return decimal.Zero, err
	}
	existing, ok := mtx.account(account.AccountID)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, account.AccountID)
	}
	if account.Balance.IsNegative() {
		// Mirrors the CHECK (balance >= 0) constraint of the SQL schema.
		return decimal.Zero, fmt.Errorf("%w: balance of account %s would become negative", apperrors.ErrStateConflict, account.AccountID)
	}
	existing.Balance = account.Balance
	existing.UpdatedAt = account.UpdatedAt
	mtx.accounts[account.AccountID] = existing
	return existing.Balance, nil
}

func (r *AccountRepository) DeleteAccountInTx(_ context.Context, tx portsrepo.Tx, accountID string) error {
	mtx, err := asMemTx(tx)
	if err != nil {
		return err
	}
	if _, ok := mtx.account(accountID); !ok {
		return apperrors.ErrNotFound
	}
	delete(mtx.accounts, accountID)
	mtx.deletedAccounts[accountID] = struct{}{}
	return nil
}
