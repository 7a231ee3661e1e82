package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/penger_ledger/internal/apperrors"
	"github.com/SscSPs/penger_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/penger_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountTypeColumns = `account_type_id, name, description, is_active, created_at, updated_at`

type PgxAccountTypeRepository struct {
	Pool *pgxpool.Pool
}

func newPgxAccountTypeRepository(pool *pgxpool.Pool) portsrepo.AccountTypeRepositoryFacade {
	return &PgxAccountTypeRepository{Pool: pool}
}

var _ portsrepo.AccountTypeRepositoryFacade = (*PgxAccountTypeRepository)(nil)

func scanAccountType(row rowScanner) (domain.AccountType, error) {
	var t domain.AccountType
	err := row.Scan(&t.AccountTypeID, &t.Name, &t.Description, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *PgxAccountTypeRepository) SaveAccountType(ctx context.Context, accountType domain.AccountType) error {
	query := `
		INSERT INTO account_types (` + accountTypeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		accountType.AccountTypeID,
		accountType.Name,
		accountType.Description,
		accountType.IsActive,
		accountType.CreatedAt,
		accountType.UpdatedAt,
	)
	if err != nil {
		return translateError(err, "failed to save account type %s", accountType.Name)
	}
	return nil
}

func (r *PgxAccountTypeRepository) FindAccountTypeByID(ctx context.Context, accountTypeID string) (*domain.AccountType, error) {
	query := `SELECT ` + accountTypeColumns + ` FROM account_types WHERE account_type_id = $1;`
	t, err := scanAccountType(r.Pool.QueryRow(ctx, query, accountTypeID))
	if err != nil {
		return nil, translateError(err, "failed to find account type %s", accountTypeID)
	}
	return &t, nil
}

func (r *PgxAccountTypeRepository) FindAccountTypeByName(ctx context.Context, name string) (*domain.AccountType, error) {
	query := `SELECT ` + accountTypeColumns + ` FROM account_types WHERE name = $1;`
	t, err := scanAccountType(r.Pool.QueryRow(ctx, query, name))
	if err != nil {
		return nil, translateError(err, "failed to find account type by name %q", name)
	}
	return &t, nil
}

func (r *PgxAccountTypeRepository) ListAccountTypes(ctx context.Context, activeOnly bool) ([]domain.AccountType, error) {
	query := `SELECT ` + accountTypeColumns + ` FROM account_types`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, translateError(err, "failed to list account types")
	}
	defer rows.Close()

	types := []domain.AccountType{}
	for rows.Next() {
		t, err := scanAccountType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account type row: %w", err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account type rows: %w", err)
	}
	return types, nil
}

func (r *PgxAccountTypeRepository) UpdateAccountType(ctx context.Context, accountType domain.AccountType) error {
	query := `
		UPDATE account_types
		SET name = $2, description = $3, is_active = $4, updated_at = $5
		WHERE account_type_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		accountType.AccountTypeID,
		accountType.Name,
		accountType.Description,
		accountType.IsActive,
		accountType.UpdatedAt,
	)
	if err != nil {
		return translateError(err, "failed to update account type %s", accountType.AccountTypeID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountTypeRepository) DeleteAccountType(ctx context.Context, accountTypeID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM account_types WHERE account_type_id = $1;`, accountTypeID)
	if err != nil {
		return translateError(err, "failed to delete account type %s", accountTypeID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
