package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/penger_ledger/internal/apperrors"
	"github.com/SscSPs/penger_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/penger_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

const otpColumns = `otp_id, user_id, purpose, code, expires_at, is_used, created_at, updated_at`

type PgxOTPRepository struct {
	BaseRepository
}

// newPgxOTPRepository creates a new repository for OTP data.
func newPgxOTPRepository(pool *pgxpool.Pool) portsrepo.OTPRepositoryWithTx {
	return &PgxOTPRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.OTPRepositoryWithTx = (*PgxOTPRepository)(nil)

func scanOTP(row rowScanner) (domain.OTP, error) {
	var otp domain.OTP
	err := row.Scan(
		&otp.OTPID,
		&otp.UserID,
		&otp.Purpose,
		&otp.Code,
		&otp.ExpiresAt,
		&otp.IsUsed,
		&otp.CreatedAt,
		&otp.UpdatedAt,
	)
	return otp, err
}

// findOne returns nil, nil when no row matches.
func findOne(row rowScanner, format string, args ...any) (*domain.OTP, error) {
	otp, err := scanOTP(row)
	if err != nil {
		translated := translateError(err, format, args...)
		if apperrors.KindOf(translated) == apperrors.ErrNotFound {
			return nil, nil
		}
		return nil, translated
	}
	return &otp, nil
}

// FindOTPByID retrieves an OTP by its ID.
func (r *PgxOTPRepository) FindOTPByID(ctx context.Context, otpID string) (*domain.OTP, error) {
	query := `SELECT ` + otpColumns + ` FROM otps WHERE otp_id = $1;`
	otp, err := scanOTP(r.Pool.QueryRow(ctx, query, otpID))
	if err != nil {
		return nil, translateError(err, "failed to find OTP by ID %s", otpID)
	}
	return &otp, nil
}

// ListOTPsByUser retrieves a page of a user's OTPs, newest first.
func (r *PgxOTPRepository) ListOTPsByUser(ctx context.Context, userID string, limit int, after *portsrepo.PageCursor) ([]domain.OTP, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + otpColumns + ` FROM otps WHERE user_id = $1`
	args := []any{userID}
	if after != nil {
		query += ` AND (created_at, otp_id) < ($2, $3)`
		args = append(args, after.CreatedAt, after.ID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, otp_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to list OTPs for user %s", userID)
	}
	defer rows.Close()

	otps := []domain.OTP{}
	for rows.Next() {
		otp, err := scanOTP(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan OTP row: %w", err)
		}
		otps = append(otps, otp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating OTP rows: %w", err)
	}
	return otps, nil
}

// DeleteExpiredOTPs removes OTPs that expired before now.
func (r *PgxOTPRepository) DeleteExpiredOTPs(ctx context.Context, now time.Time) (int64, error) {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM otps WHERE expires_at < $1;`, now)
	if err != nil {
		return 0, translateError(err, "failed to delete expired OTPs")
	}
	return cmdTag.RowsAffected(), nil
}

// LockUserPurpose takes a transaction scoped advisory lock on the (user, purpose) pair.
func (r *PgxOTPRepository) LockUserPurpose(ctx context.Context, tx portsrepo.Tx, userID string, purpose string) error {
	ptx, err := asPgxTx(tx)
	if err != nil {
		return err
	}
	_, err = ptx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1 || ':' || $2, 0));`, userID, purpose)
	if err != nil {
		return translateError(err, "failed to lock OTP issuance for user %s", userID)
	}
	return nil
}

// FindOTPByCodeForUpdate locks the most recent OTP carrying code.
func (r *PgxOTPRepository) FindOTPByCodeForUpdate(ctx context.Context, tx portsrepo.Tx, code string) (*domain.OTP, error) {
	ptx, err := asPgxTx(tx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT ` + otpColumns + `
		FROM otps
		WHERE code = $1
		ORDER BY created_at DESC, otp_id DESC
		LIMIT 1
		FOR UPDATE;
	`
	otp, err := scanOTP(ptx.QueryRow(ctx, query, code))
	if err != nil {
		return nil, translateError(err, "failed to find OTP by code")
	}
	return &otp, nil
}

func (r *PgxOTPRepository) FindActiveOTP(ctx context.Context, tx portsrepo.Tx, userID string, purpose string, now time.Time) (*domain.OTP, error) {
	ptx, err := asPgxTx(tx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT ` + otpColumns + `
		FROM otps
		WHERE user_id = $1 AND purpose = $2 AND is_used = FALSE AND expires_at >= $3
		ORDER BY created_at DESC, otp_id DESC
		LIMIT 1
		FOR UPDATE;
	`
	return findOne(ptx.QueryRow(ctx, query, userID, purpose, now), "failed to find active OTP for user %s", userID)
}

func (r *PgxOTPRepository) FindMostRecentOTP(ctx context.Context, tx portsrepo.Tx, userID string, purpose string) (*domain.OTP, error) {
	ptx, err := asPgxTx(tx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT ` + otpColumns + `
		FROM otps
		WHERE user_id = $1 AND purpose = $2
		ORDER BY created_at DESC, otp_id DESC
		LIMIT 1;
	`
	return findOne(ptx.QueryRow(ctx, query, userID, purpose), "failed to find most recent OTP for user %s", userID)
}

const (
	lockCodeQuery  = `SELECT pg_advisory_xact_lock(hashtextextended('otp-code:' || $1, 0));`
	codeInUseQuery = `SELECT EXISTS (SELECT 1 FROM otps WHERE code = $1 AND is_used = FALSE AND expires_at >= $2);`
)

// CodeInUse reports whether a valid OTP carries code. It first locks the code
// until tx ends, so issuers for different users that drew the same code queue
// here and the later one sees the earlier one's committed row.
func (r *PgxOTPRepository) CodeInUse(ctx context.Context, tx portsrepo.Tx, code string, now time.Time) (bool, error) {
	ptx, err := asPgxTx(tx)
	if err != nil {
		return false, err
	}
	if _, err := ptx.Exec(ctx, lockCodeQuery, code); err != nil {
		return false, translateError(err, "failed to lock OTP code")
	}
	var inUse bool
	if err := ptx.QueryRow(ctx, codeInUseQuery, code, now).Scan(&inUse); err != nil {
		return false, translateError(err, "failed to check OTP code usage")
	}
	return inUse, nil
}

// SaveOTPInTx inserts the OTP; an existing row only has its used flag updated.
func (r *PgxOTPRepository) SaveOTPInTx(ctx context.Context, tx portsrepo.Tx, otp domain.OTP) error {
	ptx, err := asPgxTx(tx)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO otps (` + otpColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (otp_id) DO UPDATE
		SET is_used = EXCLUDED.is_used, updated_at = EXCLUDED.updated_at;
	`
	_, err = ptx.Exec(ctx, query,
		otp.OTPID,
		otp.UserID,
		otp.Purpose,
		otp.Code,
		otp.ExpiresAt,
		otp.IsUsed,
		otp.CreatedAt,
		otp.UpdatedAt,
	)
	if err != nil {
		return translateError(err, "failed to save OTP %s", otp.OTPID)
	}
	return nil
}
