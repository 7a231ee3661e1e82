package services

import (
	"context"
	"time"

	"github.com/SscSPs/penger_ledger/internal/core/domain"
)

// OTPIssuerSvc issues one-time codes.
type OTPIssuerSvc interface {
	// GenerateOTP issues a code for (user, purpose), superseding any active one.
	// A zero ttl selects the configured default.
	GenerateOTP(ctx context.Context, userID string, purpose string, ttl time.Duration) (*domain.OTP, error)

	// ResendOTP behaves like GenerateOTP with the default ttl, unless a code for
	// (user, purpose) was issued within the resend cool-down.
	ResendOTP(ctx context.Context, userID string, purpose string) (*domain.OTP, error)
}

// OTPVerifierSvc consumes one-time codes.
type OTPVerifierSvc interface {
	VerifyOTP(ctx context.Context, userID string, code string, purpose string) (*domain.OTPVerification, error)
}

// OTPMaintenanceSvc covers housekeeping and history.
type OTPMaintenanceSvc interface {
	// CleanupExpiredOTPs deletes every expired OTP and returns how many were removed.
	CleanupExpiredOTPs(ctx context.Context) (int64, error)

	// ListUserOTPs returns one page of a user's OTPs, newest first, and the token of the next page.
	ListUserOTPs(ctx context.Context, userID string, limit int, nextToken string) ([]domain.OTP, string, error)
}

// OTPReaderSvc looks up single OTPs.
type OTPReaderSvc interface {
	// GetUserOTP returns an OTP owned by userID.
	GetUserOTP(ctx context.Context, userID string, otpID string) (*domain.OTP, error)
}

// OTPSvcFacade combines all OTP service interfaces
type OTPSvcFacade interface {
	OTPIssuerSvc
	OTPVerifierSvc
	OTPMaintenanceSvc
	OTPReaderSvc
}
