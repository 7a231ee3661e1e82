package pgsql

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/SscSPs/penger_ledger/internal/apperrors"
	"github.com/SscSPs/penger_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/penger_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, account_number, user_id, name, currency_code, account_type_id, balance, created_at, updated_at`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var acc domain.Account
	var balance decimal.Decimal
	err := row.Scan(
		&acc.AccountID,
		&acc.AccountNumber,
		&acc.UserID,
		&acc.Name,
		&acc.CurrencyCode,
		&acc.AccountTypeID,
		&balance,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	acc.Balance = balance
	return acc, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.AccountNumber,
		account.UserID,
		account.Name,
		account.CurrencyCode,
		account.AccountTypeID,
		account.Balance,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return translateError(err, "failed to save account %s", account.AccountID)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, translateError(err, "failed to find account by ID %s", accountID)
	}
	return &acc, nil
}

// FindAccountByNumber retrieves an account by its account number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		return nil, translateError(err, "failed to find account by number")
	}
	return &acc, nil
}

func (r *PgxAccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to query accounts")
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves a paginated list of accounts.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		ORDER BY created_at, account_id
		LIMIT $1 OFFSET $2;
	`
	return r.queryAccounts(ctx, query, limit, offset)
}

// ListAccountsByUser retrieves all accounts owned by a user.
func (r *PgxAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id = $1
		ORDER BY created_at, account_id;
	`
	return r.queryAccounts(ctx, query, userID)
}

func (r *PgxAccountRepository) count(ctx context.Context, query string, arg string) (int, error) {
	var n int
	if err := r.Pool.QueryRow(ctx, query, arg).Scan(&n); err != nil {
		return 0, translateError(err, "failed to count accounts")
	}
	return n, nil
}

func (r *PgxAccountRepository) CountAccountsByCurrency(ctx context.Context, currencyCode string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM accounts WHERE currency_code = $1;`, currencyCode)
}

func (r *PgxAccountRepository) CountAccountsByType(ctx context.Context, accountTypeID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM accounts WHERE account_type_id = $1;`, accountTypeID)
}

// UpdateAccount updates an existing account in the database.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, account_type_id = $3, updated_at = $4
		WHERE account_id = $1;
	`
	// Note: currency_code and balance are deliberately not updatable here.
	cmdTag, err := r.Pool.Exec(ctx, query, account.AccountID, account.Name, account.AccountTypeID, account.UpdatedAt)
	if err != nil {
		return translateError(err, "failed to execute update account %s", account.AccountID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountsByIDsForUpdate retrieves multiple accounts by IDs and locks the rows for update.
// Rows are locked in ascending account_id order so that two transactions touching the
// same pair of accounts always queue instead of deadlocking.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx portsrepo.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	ptx, err := asPgxTx(tx)
	if err != nil {
		return nil, err
	}

	ids := slices.Clone(accountIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := ptx.Query(ctx, query, ids)
	if err != nil {
		return nil, translateError(err, "failed to query accounts by IDs for update")
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account, len(ids))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, translateError(err, "failed to scan locked account row")
		}
		accountsMap[acc.AccountID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "error iterating locked account rows")
	}

	if len(accountsMap) != len(ids) {
		missing := []string{}
		for _, id := range ids {
			if _, found := accountsMap[id]; !found {
				missing = append(missing, id)
			}
		}
		slog.WarnContext(ctx, "Some accounts requested for update lock were not found", "missing_accounts", missing)
		return nil, fmt.Errorf("%w: could not find or lock all requested accounts, missing: %v", apperrors.ErrNotFound, missing)
	}

	return accountsMap, nil
}

// SaveBalanceInTx writes the balance of a locked account.
func (r *PgxAccountRepository) SaveBalanceInTx(ctx context.Context, tx portsrepo.Tx, account domain.Account) (decimal.Decimal, error) {
	ptx, err := asPgxTx(tx)
	if err != nil {
		return decimal.Zero, err
	}
	updatedAt := account.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	query := `
		UPDATE accounts
		SET balance = $2, updated_at = $3
		WHERE account_id = $1
		RETURNING balance;
	`
	var stored decimal.Decimal
	if err := ptx.QueryRow(ctx, query, account.AccountID, account.Balance, updatedAt).Scan(&stored); err != nil {
		return decimal.Zero, translateError(err, "failed to update balance for account %s", account.AccountID)
	}
	return stored, nil
}

// DeleteAccountInTx deletes a locked account.
func (r *PgxAccountRepository) DeleteAccountInTx(ctx context.Context, tx portsrepo.Tx, accountID string) error {
	ptx, err := asPgxTx(tx)
	if err != nil {
		return err
	}
	cmdTag, err := ptx.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return translateError(err, "failed to delete account %s", accountID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
