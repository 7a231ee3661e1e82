package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/penger_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOTPMaintenance struct {
	mock.Mock
}

func (m *mockOTPMaintenance) CleanupExpiredOTPs(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOTPMaintenance) ListUserOTPs(ctx context.Context, userID string, limit int, nextToken string) ([]domain.OTP, string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	return args.Get(0).([]domain.OTP), args.String(1), args.Error(2)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCleanupExpiredOTPs(t *testing.T) {
	svc := new(mockOTPMaintenance)
	svc.On("CleanupExpiredOTPs", mock.Anything).Return(int64(3), nil).Once()

	s := NewScheduler(svc, "@every 1h", discardLogger())
	s.CleanupExpiredOTPs()

	svc.AssertExpectations(t)
}

func TestCleanupExpiredOTPs_ErrorIsLogged(t *testing.T) {
	svc := new(mockOTPMaintenance)
	svc.On("CleanupExpiredOTPs", mock.Anything).Return(int64(0), errors.New("db down")).Once()

	s := NewScheduler(svc, "@every 1h", discardLogger())
	assert.NotPanics(t, s.CleanupExpiredOTPs)
	svc.AssertExpectations(t)
}

func TestScheduler_Start(t *testing.T) {
	t.Run("empty schedule disables the job", func(t *testing.T) {
		s := NewScheduler(new(mockOTPMaintenance), "", discardLogger())
		require.NoError(t, s.Start())
		assert.Empty(t, s.cron.Entries())
	})

	t.Run("invalid schedule", func(t *testing.T) {
		s := NewScheduler(new(mockOTPMaintenance), "not a schedule", discardLogger())
		assert.Error(t, s.Start())
	})

	t.Run("valid schedule registers one entry", func(t *testing.T) {
		s := NewScheduler(new(mockOTPMaintenance), "@every 1h", discardLogger())
		require.NoError(t, s.Start())
		defer s.Stop()
		assert.Len(t, s.cron.Entries(), 1)
	})

	t.Run("stop waits for running jobs", func(t *testing.T) {
		s := NewScheduler(new(mockOTPMaintenance), "@every 1h", discardLogger())
		require.NoError(t, s.Start())
		select {
		case <-s.Stop().Done():
		case <-time.After(time.Second):
			t.Fatal("scheduler did not stop")
		}
	})
}
