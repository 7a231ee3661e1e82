package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/penger_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/penger_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/penger_ledger/internal/core/services"
	"github.com/SscSPs/penger_ledger/internal/repositories/database/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// testClock is a manually advanced clock.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// scriptedRandom hands out queued values, then falls back to a counter.
type scriptedRandom struct {
	mu      sync.Mutex
	queue   []string
	counter int
}

func (r *scriptedRandom) Digits(n int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) > 0 {
		next := r.queue[0]
		r.queue = r.queue[1:]
		return next, nil
	}
	r.counter++
	return fmt.Sprintf("%0*d", n, r.counter), nil
}

func (r *scriptedRandom) Push(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue = append(r.queue, values...)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// memoryFixture is a seeded in-memory store with its repositories.
type memoryFixture struct {
	store    *memory.Store
	repos    portsrepo.RepositoryProvider
	clock    *testClock
	random   *scriptedRandom
	userID   string
	savings  domain.AccountType
	checking domain.AccountType
}

func newMemoryFixture(t *testing.T) *memoryFixture {
	t.Helper()
	f := &memoryFixture{
		store:  memory.NewStore(),
		clock:  newTestClock(),
		random: &scriptedRandom{},
		userID: uuid.NewString(),
	}
	f.store.Seed(f.clock.Now())
	f.store.AddUser(f.userID)
	f.repos = memory.NewRepositoryProvider(f.store)

	ctx := context.Background()
	savings, err := f.repos.AccountTypeRepo.FindAccountTypeByName(ctx, "Savings")
	require.NoError(t, err)
	checking, err := f.repos.AccountTypeRepo.FindAccountTypeByName(ctx, "Checking")
	require.NoError(t, err)
	f.savings, f.checking = *savings, *checking
	return f
}

func (f *memoryFixture) options() []services.Option {
	return []services.Option{
		services.WithClock(f.clock.Now),
		services.WithRandomSource(f.random),
		services.WithUserDirectory(f.repos.UserRepo),
		services.WithRetryPolicy(services.RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond}),
	}
}

// addAccount stores an account directly, bypassing the account service.
func (f *memoryFixture) addAccount(t *testing.T, currency string, balance string) domain.Account {
	t.Helper()
	now := f.clock.Now()
	acc := domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: fmt.Sprintf("%010d", len(f.mustList(t))+1),
		UserID:        f.userID,
		Name:          "Test " + currency,
		CurrencyCode:  currency,
		AccountTypeID: f.savings.AccountTypeID,
		Balance:       dec(balance),
		AuditFields:   domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, f.repos.AccountRepo.SaveAccount(context.Background(), acc))
	return acc
}

func (f *memoryFixture) mustList(t *testing.T) []domain.Account {
	t.Helper()
	accounts, err := f.repos.AccountRepo.ListAccounts(context.Background(), 1000, 0)
	require.NoError(t, err)
	return accounts
}

func (f *memoryFixture) balance(t *testing.T, accountID string) decimal.Decimal {
	t.Helper()
	acc, err := f.repos.AccountRepo.FindAccountByID(context.Background(), accountID)
	require.NoError(t, err)
	return acc.Balance
}
