package pgsql

import (
	portsrepo "github.com/SscSPs/penger_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every Postgres repository around one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(dbPool),
		OTPRepo:         newPgxOTPRepository(dbPool),
		CurrencyRepo:    newPgxCurrencyRepository(dbPool),
		AccountTypeRepo: newPgxAccountTypeRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
		Health:          &BaseRepository{Pool: dbPool},
	}
}
