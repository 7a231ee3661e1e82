package repositories

import (
	"context"
)

// Tx is an open unit of work. Concrete stores hand out their own implementation
// (pgx.Tx for Postgres) and only accept the kind they created.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx Tx) error

	// Rollback rolls back a transaction. Rolling back a finished transaction is a no-op.
	Rollback(ctx context.Context, tx Tx) error
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
