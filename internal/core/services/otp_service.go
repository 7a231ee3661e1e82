package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/penger_ledger/internal/apperrors"
	"github.com/SscSPs/penger_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/penger_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/penger_ledger/internal/core/ports/services"
	"github.com/SscSPs/penger_ledger/internal/utils"
	"github.com/SscSPs/penger_ledger/internal/utils/pagination"
	"github.com/google/uuid"
)

const (
	minOTPTTL          = time.Minute
	minVerifyCodeLen   = 4
	maxVerifyCodeLen   = 8
	defaultHistorySize = 20
	maxHistorySize     = 100
)

// OTPPolicy holds the tunables of the OTP life-cycle.
type OTPPolicy struct {
	CodeLength      int
	DefaultTTL      time.Duration
	MaxTTL          time.Duration
	ResendCooldown  time.Duration
	MaxCodeAttempts int
}

// DefaultOTPPolicy issues 6 digit codes valid for 5 minutes, resendable after 1 minute.
func DefaultOTPPolicy() OTPPolicy {
	return OTPPolicy{
		CodeLength:      6,
		DefaultTTL:      5 * time.Minute,
		MaxTTL:          60 * time.Minute,
		ResendCooldown:  time.Minute,
		MaxCodeAttempts: 5,
	}
}

// otpService manages the OTP life-cycle: Active, then Used, Superseded or Expired.
// Superseded codes are stored with the used flag set, like consumed ones.
type otpService struct {
	BaseService
	otpRepo portsrepo.OTPRepositoryWithTx
	users   portsrepo.UserReader
	random  utils.RandomSource
	policy  OTPPolicy
	tx      txRunner
}

// NewOTPService creates a new OTPSvcFacade.
func NewOTPService(otpRepo portsrepo.OTPRepositoryWithTx, policy OTPPolicy, options ...Option) portssvc.OTPSvcFacade {
	opts := newServiceOptions(options...)
	defaults := DefaultOTPPolicy()
	if policy.CodeLength <= 0 {
		policy.CodeLength = defaults.CodeLength
	}
	if policy.DefaultTTL <= 0 {
		policy.DefaultTTL = defaults.DefaultTTL
	}
	if policy.MaxTTL < policy.DefaultTTL {
		policy.MaxTTL = max(defaults.MaxTTL, policy.DefaultTTL)
	}
	if policy.ResendCooldown < 0 {
		policy.ResendCooldown = 0
	}
	if policy.MaxCodeAttempts <= 0 {
		policy.MaxCodeAttempts = defaults.MaxCodeAttempts
	}
	return &otpService{
		BaseService: BaseService{clock: opts.clock},
		otpRepo:     otpRepo,
		users:       opts.users,
		random:      opts.random,
		policy:      policy,
		tx:          newTxRunner(otpRepo, opts.retry),
	}
}

var _ portssvc.OTPSvcFacade = (*otpService)(nil)

func (s *otpService) GenerateOTP(ctx context.Context, userID string, purpose string, ttl time.Duration) (*domain.OTP, error) {
	if ttl == 0 {
		ttl = s.policy.DefaultTTL
	}
	if ttl < minOTPTTL || ttl > s.policy.MaxTTL {
		s.LogWarn(ctx, ErrInvalidTTL, "OTP generation rejected",
			slog.String("user_id", userID),
			slog.Duration("ttl", ttl))
		return nil, ErrInvalidTTL
	}
	return s.issue(ctx, userID, purpose, ttl, false)
}

func (s *otpService) ResendOTP(ctx context.Context, userID string, purpose string) (*domain.OTP, error) {
	return s.issue(ctx, userID, purpose, s.policy.DefaultTTL, true)
}

// issue supersedes the active OTP of (user, purpose) and stores a new one. The
// (user, purpose) pair is locked for the whole transaction so that concurrent
// issuers queue behind each other.
func (s *otpService) issue(ctx context.Context, userID string, purpose string, ttl time.Duration, enforceCooldown bool) (*domain.OTP, error) {
	purpose = strings.TrimSpace(purpose)
	if err := s.checkSubject(ctx, userID, purpose); err != nil {
		s.LogWarn(ctx, err, "OTP issuance rejected", slog.String("user_id", userID), slog.String("purpose", purpose))
		return nil, err
	}

	var issued domain.OTP
	var superseded string
	err := s.tx.run(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		superseded = ""
		if err := s.otpRepo.LockUserPurpose(ctx, tx, userID, purpose); err != nil {
			return err
		}
		now := s.Now()

		if enforceCooldown && s.policy.ResendCooldown > 0 {
			recent, err := s.otpRepo.FindMostRecentOTP(ctx, tx, userID, purpose)
			if err != nil {
				return err
			}
			if recent != nil && !recent.CreatedAt.Before(now.Add(-s.policy.ResendCooldown)) {
				wait := recent.CreatedAt.Add(s.policy.ResendCooldown).Sub(now)
				return apperrors.WithRetryAfter(ErrRateLimited, wait)
			}
		}

		active, err := s.otpRepo.FindActiveOTP(ctx, tx, userID, purpose, now)
		if err != nil {
			return err
		}
		if active != nil {
			active.IsUsed = true
			active.UpdatedAt = now
			if err := s.otpRepo.SaveOTPInTx(ctx, tx, *active); err != nil {
				return err
			}
			superseded = active.OTPID
		}

		code, err := s.newCode(ctx, tx, now)
		if err != nil {
			return err
		}
		issued = domain.OTP{
			OTPID:       uuid.NewString(),
			UserID:      userID,
			Purpose:     purpose,
			Code:        code,
			ExpiresAt:   now.Add(ttl),
			AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
		}
		return s.otpRepo.SaveOTPInTx(ctx, tx, issued)
	})
	if err != nil {
		s.logFailure(ctx, err, "OTP issuance failed",
			slog.String("user_id", userID),
			slog.String("purpose", purpose),
			slog.Bool("resend", enforceCooldown))
		return nil, err
	}

	s.LogInfo(ctx, "OTP issued",
		slog.String("otp_id", issued.OTPID),
		slog.String("user_id", userID),
		slog.String("purpose", purpose),
		slog.String("superseded_otp_id", superseded),
		slog.Time("expires_at", issued.ExpiresAt))
	return &issued, nil
}

// newCode draws codes until one is not carried by any valid OTP.
func (s *otpService) newCode(ctx context.Context, tx portsrepo.Tx, now time.Time) (string, error) {
	for attempt := 1; attempt <= s.policy.MaxCodeAttempts; attempt++ {
		code, err := s.random.Digits(s.policy.CodeLength)
		if err != nil {
			return "", apperrors.NewAppError(apperrors.ErrInternal, "failed to generate OTP code", err)
		}
		inUse, err := s.otpRepo.CodeInUse(ctx, tx, code, now)
		if err != nil {
			return "", err
		}
		if !inUse {
			return code, nil
		}
		s.LogDebug(ctx, "OTP code collision, drawing again", slog.Int("attempt", attempt))
	}
	return "", ErrDuplicateCode
}

func (s *otpService) checkSubject(ctx context.Context, userID, purpose string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidUser
	}
	if purpose == "" {
		return ErrInvalidPurpose
	}
	if s.users == nil {
		return nil
	}
	exists, err := s.users.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}

// VerifyOTP consumes code. The OTP row stays locked until the used flag is
// written, so a code verifies successfully at most once.
func (s *otpService) VerifyOTP(ctx context.Context, userID string, code string, purpose string) (*domain.OTPVerification, error) {
	purpose = strings.TrimSpace(purpose)
	if len(code) < minVerifyCodeLen || len(code) > maxVerifyCodeLen || !utils.IsDigits(code) {
		s.LogWarn(ctx, ErrMalformedCode, "OTP verification rejected", slog.String("user_id", userID))
		return nil, ErrMalformedCode
	}

	var receipt domain.OTPVerification
	var otpID string
	err := s.tx.run(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		otp, err := s.otpRepo.FindOTPByCodeForUpdate(ctx, tx, code)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return ErrInvalidCode
			}
			return err
		}
		otpID = otp.OTPID

		switch {
		case otp.UserID != userID:
			return ErrUserMismatch
		case otp.Purpose != purpose:
			return ErrPurposeMismatch
		case otp.IsUsed:
			return ErrOTPAlreadyUsed
		}
		now := s.Now()
		if otp.IsExpired(now) {
			return ErrOTPExpired
		}

		otp.IsUsed = true
		otp.UpdatedAt = now
		if err := s.otpRepo.SaveOTPInTx(ctx, tx, *otp); err != nil {
			return err
		}
		receipt = domain.OTPVerification{Purpose: otp.Purpose, VerifiedAt: now}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "OTP verification failed",
			slog.String("user_id", userID),
			slog.String("purpose", purpose),
			slog.String("otp_id", otpID))
		return nil, err
	}

	s.LogInfo(ctx, "OTP verified",
		slog.String("otp_id", otpID),
		slog.String("user_id", userID),
		slog.String("purpose", purpose))
	return &receipt, nil
}

func (s *otpService) CleanupExpiredOTPs(ctx context.Context) (int64, error) {
	deleted, err := s.otpRepo.DeleteExpiredOTPs(ctx, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to delete expired OTPs")
		return 0, err
	}
	s.LogInfo(ctx, "Expired OTPs deleted", slog.Int64("deleted", deleted))
	return deleted, nil
}

// GetUserOTP returns one of userID's OTPs. An OTP owned by someone else is reported as not found.
func (s *otpService) GetUserOTP(ctx context.Context, userID string, otpID string) (*domain.OTP, error) {
	otp, err := s.otpRepo.FindOTPByID(ctx, otpID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrOTPNotFound
		}
		s.LogError(ctx, err, "Failed to get OTP", slog.String("otp_id", otpID))
		return nil, err
	}
	if otp.UserID != userID {
		s.LogWarn(ctx, ErrOTPNotFound, "OTP lookup by another user", slog.String("otp_id", otpID), slog.String("user_id", userID))
		return nil, ErrOTPNotFound
	}
	return otp, nil
}

func (s *otpService) ListUserOTPs(ctx context.Context, userID string, limit int, nextToken string) ([]domain.OTP, string, error) {
	if limit <= 0 {
		limit = defaultHistorySize
	}
	if limit > maxHistorySize {
		limit = maxHistorySize
	}

	var after *portsrepo.PageCursor
	if nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(nextToken)
		if err != nil {
			s.LogWarn(ctx, err, "Invalid OTP history token", slog.String("user_id", userID))
			return nil, "", ErrInvalidPageToken.Wrap(err)
		}
		after = &portsrepo.PageCursor{CreatedAt: createdAt, ID: id}
	}

	otps, err := s.otpRepo.ListOTPsByUser(ctx, userID, limit+1, after)
	if err != nil {
		s.LogError(ctx, err, "Failed to list OTPs", slog.String("user_id", userID))
		return nil, "", err
	}

	next := ""
	if len(otps) > limit {
		otps = otps[:limit]
		last := otps[len(otps)-1]
		next = pagination.EncodeToken(last.CreatedAt, last.OTPID)
	}
	return otps, next, nil
}
