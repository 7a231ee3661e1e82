package pgsql

import (
	"context"

	portsrepo "github.com/SscSPs/penger_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUserRepository reads the users table kept in sync by the identity service.
type PgxUserRepository struct {
	Pool *pgxpool.Pool
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserReader {
	return &PgxUserRepository{Pool: pool}
}

var _ portsrepo.UserReader = (*PgxUserRepository)(nil)

// UserExists reports whether the user id is known.
func (r *PgxUserRepository) UserExists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1);`, userID).Scan(&exists)
	if err != nil {
		return false, translateError(err, "failed to look up user %s", userID)
	}
	return exists, nil
}
