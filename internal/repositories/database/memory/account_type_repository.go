package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/penger_ledger/internal/apperrors"
	"github.com/SscSPs/penger_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/penger_ledger/internal/core/ports/repositories"
)

// AccountTypeRepository is the in-memory account type store.
type AccountTypeRepository struct {
	store *Store
}

// NewAccountTypeRepository creates a new repository for account type data.
func NewAccountTypeRepository(store *Store) *AccountTypeRepository {
	return &AccountTypeRepository{store: store}
}

var _ portsrepo.AccountTypeRepositoryFacade = (*AccountTypeRepository)(nil)

func (r *AccountTypeRepository) FindAccountTypeByID(_ context.Context, accountTypeID string) (*domain.AccountType, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	t, ok := r.store.accountTypes[accountTypeID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (r *AccountTypeRepository) FindAccountTypeByName(_ context.Context, name string) (*domain.AccountType, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, t := range r.store.accountTypes {
		if t.Name == name {
			found := t
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *AccountTypeRepository) ListAccountTypes(_ context.Context, activeOnly bool) ([]domain.AccountType, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]domain.AccountType, 0, len(r.store.accountTypes))
	for _, t := range r.store.accountTypes {
		if activeOnly && !t.IsActive {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *AccountTypeRepository) nameTaken(name, exceptID string) bool {
	for id, t := range r.store.accountTypes {
		if t.Name == name && id != exceptID {
			return true
		}
	}
	return false
}

func (r *AccountTypeRepository) SaveAccountType(_ context.Context, accountType domain.AccountType) error {
	r.store.txLock.Lock()
	defer r.store.txLock.Unlock()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.accountTypes[accountType.AccountTypeID]; exists || r.nameTaken(accountType.Name, "") {
		return fmt.Errorf("%w: account type %s already exists", apperrors.ErrDuplicate, accountType.Name)
	}
	r.store.accountTypes[accountType.AccountTypeID] = accountType
	return nil
}

func (r *AccountTypeRepository) UpdateAccountType(_ context.Context, accountType domain.AccountType) error {
	r.store.txLock.Lock()
	defer r.store.txLock.Unlock()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.accountTypes[accountType.AccountTypeID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if r.nameTaken(accountType.Name, accountType.AccountTypeID) {
		return fmt.Errorf("%w: account type name %s is already in use", apperrors.ErrDuplicate, accountType.Name)
	}
	existing.Name = accountType.Name
	existing.Description = accountType.Description
	existing.IsActive = accountType.IsActive
	existing.UpdatedAt = accountType.UpdatedAt
	r.store.accountTypes[accountType.AccountTypeID] = existing
	return nil
}

func (r *AccountTypeRepository) DeleteAccountType(_ context.Context, accountTypeID string) error {
	r.store.txLock.Lock()
	defer r.store.txLock.Unlock()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.accountTypes[accountTypeID]; !ok {
		return apperrors.ErrNotFound
	}
	for _, acc := range r.store.accounts {
		if acc.AccountTypeID == accountTypeID {
			return fmt.Errorf("%w: account type %s is used by accounts", apperrors.ErrReferenced, accountTypeID)
		}
	}
	delete(r.store.accountTypes, accountTypeID)
	return nil
}
