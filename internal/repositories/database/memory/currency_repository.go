package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/penger_ledger/internal/apperrors"
	"github.com/SscSPs/penger_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/penger_ledger/internal/core/ports/repositories"
)

// CurrencyRepository is the in-memory currency store.
type CurrencyRepository struct {
	store *Store
}

// NewCurrencyRepository creates a new repository for currency data.
func NewCurrencyRepository(store *Store) *CurrencyRepository {
	return &CurrencyRepository{store: store}
}

var _ portsrepo.CurrencyRepositoryFacade = (*CurrencyRepository)(nil)

func (r *CurrencyRepository) FindCurrencyByCode(_ context.Context, currencyCode string) (*domain.Currency, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	c, ok := r.store.currencies[currencyCode]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (r *CurrencyRepository) ListCurrencies(_ context.Context, activeOnly bool) ([]domain.Currency, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]domain.Currency, 0, len(r.store.currencies))
	for _, c := range r.store.currencies {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CurrencyRepository) SaveCurrency(_ context.Context, currency domain.Currency) error {
	r.store.txLock.Lock()
	defer r.store.txLock.Unlock()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.currencies[currency.CurrencyCode]; exists {
		return fmt.Errorf("%w: currency with code %s already exists", apperrors.ErrDuplicate, currency.CurrencyCode)
	}
	r.store.currencies[currency.CurrencyCode] = currency
	return nil
}

func (r *CurrencyRepository) UpdateCurrency(_ context.Context, currency domain.Currency) error {
	r.store.txLock.Lock()
	defer r.store.txLock.Unlock()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.currencies[currency.CurrencyCode]
	if !ok {
		return apperrors.ErrNotFound
	}
	existing.Name = currency.Name
	existing.Symbol = currency.Symbol
	existing.IsActive = currency.IsActive
	existing.UpdatedAt = currency.UpdatedAt
	r.store.currencies[currency.CurrencyCode] = existing
	return nil
}

func (r *CurrencyRepository) DeleteCurrency(_ context.Context, currencyCode string) error {
	r.store.txLock.Lock()
	defer r.store.txLock.Unlock()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.currencies[currencyCode]; !ok {
		return apperrors.ErrNotFound
	}
	for _, acc := range r.store.accounts {
		if acc.CurrencyCode == currencyCode {
			return fmt.Errorf("%w: currency %s is used by accounts", apperrors.ErrReferenced, currencyCode)
		}
	}
	delete(r.store.currencies, currencyCode)
	return nil
}
