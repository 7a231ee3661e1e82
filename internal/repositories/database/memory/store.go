// Package memory implements every store contract in process. Transactions are
// serialised: Begin takes an exclusive lock that is held until Commit or Rollback,
// writes are staged on the transaction and applied atomically on Commit.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/penger_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/penger_ledger/internal/core/ports/repositories"
)

// Store holds the committed state shared by all memory repositories.
type Store struct {
	txLock sync.Mutex   // held for the lifetime of a transaction and by non-transactional writes
	mu     sync.RWMutex // guards the maps below

	accounts     map[string]domain.Account
	otps         map[string]domain.OTP
	currencies   map[string]domain.Currency
	accountTypes map[string]domain.AccountType
	users        map[string]struct{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:     make(map[string]domain.Account),
		otps:         make(map[string]domain.OTP),
		currencies:   make(map[string]domain.Currency),
		accountTypes: make(map[string]domain.AccountType),
		users:        make(map[string]struct{}),
	}
}

// AddUser registers a known user id.
func (s *Store) AddUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID] = struct{}{}
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error {
	return nil
}

// memTx stages writes until commit.
type memTx struct {
	store           *Store
	accounts        map[string]domain.Account
	deletedAccounts map[string]struct{}
	otps            map[string]domain.OTP
	done            bool
}

// Commit applies the staged writes and releases the transaction lock.
func (t *memTx) Commit(_ context.Context) error {
	if t.done {
		return fmt.Errorf("memory: transaction already finished")
	}
	t.done = true
	t.store.mu.Lock()
	for id, acc := range t.accounts {
		t.store.accounts[id] = acc
	}
	for id := range t.deletedAccounts {
		delete(t.store.accounts, id)
	}
	for id, otp := range t.otps {
		t.store.otps[id] = otp
	}
	t.store.mu.Unlock()
	t.store.txLock.Unlock()
	return nil
}

// Rollback discards the staged writes. Rolling back a finished transaction is a no-op.
func (t *memTx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.txLock.Unlock()
	return nil
}

// account reads through the staged writes.
func (t *memTx) account(id string) (domain.Account, bool) {
	if _, deleted := t.deletedAccounts[id]; deleted {
		return domain.Account{}, false
	}
	if acc, ok := t.accounts[id]; ok {
		return acc, true
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	acc, ok := t.store.accounts[id]
	return acc, ok
}

// otpSnapshot merges committed and staged OTPs.
func (t *memTx) otpSnapshot() []domain.OTP {
	t.store.mu.RLock()
	merged := make(map[string]domain.OTP, len(t.store.otps)+len(t.otps))
	for id, otp := range t.store.otps {
		merged[id] = otp
	}
	t.store.mu.RUnlock()
	for id, otp := range t.otps {
		merged[id] = otp
	}
	out := make([]domain.OTP, 0, len(merged))
	for _, otp := range merged {
		out = append(out, otp)
	}
	return out
}

// transactionManager is embedded by repositories that take part in transactions.
type transactionManager struct {
	store *Store
}

// Begin starts a new transaction, waiting for any running one to finish.
func (m transactionManager) Begin(ctx context.Context) (portsrepo.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.store.txLock.Lock()
	return &memTx{
		store:           m.store,
		accounts:        make(map[string]domain.Account),
		deletedAccounts: make(map[string]struct{}),
		otps:            make(map[string]domain.OTP),
	}, nil
}

// Commit commits a transaction
func (m transactionManager) Commit(ctx context.Context, tx portsrepo.Tx) error {
	return tx.Commit(ctx)
}

// Rollback rolls back a transaction
func (m transactionManager) Rollback(ctx context.Context, tx portsrepo.Tx) error {
	return tx.Rollback(ctx)
}

func asMemTx(tx portsrepo.Tx) (*memTx, error) {
	mtx, ok := tx.(*memTx)
	if !ok || mtx == nil {
		return nil, fmt.Errorf("memory: unsupported transaction type %T", tx)
	}
	if mtx.done {
		return nil, fmt.Errorf("memory: transaction already finished")
	}
	return mtx, nil
}

// NewRepositoryProvider wires every memory repository around one store.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     NewAccountRepository(store),
		OTPRepo:         NewOTPRepository(store),
		CurrencyRepo:    NewCurrencyRepository(store),
		AccountTypeRepo: NewAccountTypeRepository(store),
		UserRepo:        NewUserRepository(store),
		Health:          store,
	}
}
