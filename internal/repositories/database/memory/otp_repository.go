package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/penger_ledger/internal/apperrors"
	"github.com/SscSPs/penger_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/penger_ledger/internal/core/ports/repositories"
)

// OTPRepository is the in-memory OTP store.
type OTPRepository struct {
	transactionManager
}

// NewOTPRepository creates a new repository for OTP data.
func NewOTPRepository(store *Store) *OTPRepository {
	return &OTPRepository{transactionManager{store: store}}
}

var _ portsrepo.OTPRepositoryWithTx = (*OTPRepository)(nil)

// newestFirst orders by created_at DESC, otp_id DESC.
func newestFirst(otps []domain.OTP) {
	sort.Slice(otps, func(i, j int) bool {
		if otps[i].CreatedAt.Equal(otps[j].CreatedAt) {
			return otps[i].OTPID > otps[j].OTPID
		}
		return otps[i].CreatedAt.After(otps[j].CreatedAt)
	})
}

func (r *OTPRepository) FindOTPByID(_ context.Context, otpID string) (*domain.OTP, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	otp, ok := r.store.otps[otpID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &otp, nil
}

func (r *OTPRepository) ListOTPsByUser(_ context.Context, userID string, limit int, after *portsrepo.PageCursor) ([]domain.OTP, error) {
	r.store.mu.RLock()
	otps := make([]domain.OTP, 0)
	for _, otp := range r.store.otps {
		if otp.UserID == userID {
			otps = append(otps, otp)
		}
	}
	r.store.mu.RUnlock()
	newestFirst(otps)

	out := make([]domain.OTP, 0, limit)
	for _, otp := range otps {
		if after != nil {
			older := otp.CreatedAt.Before(after.CreatedAt) ||
				(otp.CreatedAt.Equal(after.CreatedAt) && otp.OTPID < after.ID)
			if !older {
				continue
			}
		}
		out = append(out, otp)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *OTPRepository) DeleteExpiredOTPs(_ context.Context, now time.Time) (int64, error) {
	r.store.txLock.Lock()
	defer r.store.txLock.Unlock()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var deleted int64
	for id, otp := range r.store.otps {
		if otp.ExpiresAt.Before(now) {
			delete(r.store.otps, id)
			deleted++
		}
	}
	return deleted, nil
}

// LockUserPurpose is a no-op: memory transactions are already serialised.
func (r *OTPRepository) LockUserPurpose(_ context.Context, tx portsrepo.Tx, _ string, _ string) error {
	_, err := asMemTx(tx)
	return err
}

func (r *OTPRepository) FindOTPByCodeForUpdate(_ context.Context, tx portsrepo.Tx, code string) (*domain.OTP, error) {
	mtx, err := asMemTx(tx)
	if err != nil {
		return nil, err
	}
	return first(mtx.otpSnapshot(), func(o domain.OTP) bool { return o.Code == code })
}

func (r *OTPRepository) FindActiveOTP(_ context.Context, tx portsrepo.Tx, userID string, purpose string, now time.Time) (*domain.OTP, error) {
	mtx, err := asMemTx(tx)
	if err != nil {
		return nil, err
	}
	otp, err := first(mtx.otpSnapshot(), func(o domain.OTP) bool {
		return o.UserID == userID && o.Purpose == purpose && o.IsValid(now)
	})
	if err == apperrors.ErrNotFound {
		return nil, nil
	}
	return otp, err
}

func (r *OTPRepository) FindMostRecentOTP(_ context.Context, tx portsrepo.Tx, userID string, purpose string) (*domain.OTP, error) {
	mtx, err := asMemTx(tx)
	if err != nil {
		return nil, err
	}
	otp, err := first(mtx.otpSnapshot(), func(o domain.OTP) bool {
		return o.UserID == userID && o.Purpose == purpose
	})
	if err == apperrors.ErrNotFound {
		return nil, nil
	}
	return otp, err
}

func (r *OTPRepository) CodeInUse(_ context.Context, tx portsrepo.Tx, code string, now time.Time) (bool, error) {
	mtx, err := asMemTx(tx)
	if err != nil {
		return false, err
	}
	for _, otp := range mtx.otpSnapshot() {
		if otp.Code == code && otp.IsValid(now) {
			return true, nil
		}
	}
	return false, nil
}

func (r *OTPRepository) SaveOTPInTx(_ context.Context, tx portsrepo.Tx, otp domain.OTP) error {
	mtx, err := asMemTx(tx)
	if err != nil {
		return err
	}
	mtx.otps[otp.OTPID] = otp
	return nil
}

func first(otps []domain.OTP, match func(domain.OTP) bool) (*domain.OTP, error) {
	newestFirst(otps)
	for _, otp := range otps {
		if match(otp) {
			found := otp
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}
