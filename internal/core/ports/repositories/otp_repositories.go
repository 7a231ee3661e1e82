package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/penger_ledger/internal/core/domain"
)

// PageCursor identifies the last row of a page for keyset pagination
// (newest first: created_at DESC, id DESC).
type PageCursor struct {
	CreatedAt time.Time
	ID        string
}

// OTPReader defines read operations for OTP data
type OTPReader interface {
	// FindOTPByID retrieves an OTP by id.
	FindOTPByID(ctx context.Context, otpID string) (*domain.OTP, error)

	// ListOTPsByUser retrieves up to limit OTPs of a user, newest first, strictly after cursor.
	ListOTPsByUser(ctx context.Context, userID string, limit int, after *PageCursor) ([]domain.OTP, error)
}

// OTPWriter defines bulk write operations that do not need a caller transaction.
type OTPWriter interface {
	// DeleteExpiredOTPs removes every OTP whose expiry is before now and returns the count.
	DeleteExpiredOTPs(ctx context.Context, now time.Time) (int64, error)
}

// OTPTransactionSupport defines operations that run inside a caller supplied transaction.
type OTPTransactionSupport interface {
	// LockUserPurpose serialises issuance for one (user, purpose) pair until the transaction ends.
	LockUserPurpose(ctx context.Context, tx Tx, userID string, purpose string) error

	// FindOTPByCodeForUpdate returns the most recently created OTP carrying code and locks it.
	FindOTPByCodeForUpdate(ctx context.Context, tx Tx, code string) (*domain.OTP, error)

	// FindActiveOTP returns the unused, unexpired OTP for (user, purpose), or nil.
	FindActiveOTP(ctx context.Context, tx Tx, userID string, purpose string, now time.Time) (*domain.OTP, error)

	// FindMostRecentOTP returns the newest OTP for (user, purpose) regardless of state, or nil.
	FindMostRecentOTP(ctx context.Context, tx Tx, userID string, purpose string) (*domain.OTP, error)

	// CodeInUse reports whether any valid OTP currently carries code.
	CodeInUse(ctx context.Context, tx Tx, code string, now time.Time) (bool, error)

	// SaveOTPInTx inserts the OTP or updates its used flag when it already exists.
	SaveOTPInTx(ctx context.Context, tx Tx, otp domain.OTP) error
}

// OTPRepositoryFacade combines all OTP-related repository interfaces
type OTPRepositoryFacade interface {
	OTPReader
	OTPWriter
	OTPTransactionSupport
}

// OTPRepositoryWithTx extends OTPRepositoryFacade with transaction capabilities
type OTPRepositoryWithTx interface {
	OTPRepositoryFacade
	TransactionManager
}
