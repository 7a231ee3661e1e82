package apperrors

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errInsufficient = New(ErrStateConflict, "INSUFFICIENT_FUNDS", "insufficient funds")

func TestAppError_Is(t *testing.T) {
	wrapped := fmt.Errorf("withdraw: %w", errInsufficient.Wrap(errors.New("check constraint")))

	assert.ErrorIs(t, wrapped, errInsufficient)
	assert.ErrorIs(t, wrapped, ErrStateConflict)
	assert.NotErrorIs(t, wrapped, New(ErrStateConflict, "OTP_EXPIRED", "expired"))
	assert.Equal(t, "insufficient funds: check constraint", errInsufficient.Wrap(errors.New("check constraint")).Error())
}

func TestKindCodeMessage(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    error
		code    string
		message string
	}{
		{"app error", errInsufficient, ErrStateConflict, "INSUFFICIENT_FUNDS", "insufficient funds"},
		{"bare kind", fmt.Errorf("%w: account 1", ErrNotFound), ErrNotFound, "NOT_FOUND", "resource not found: account 1"},
		{"transient", Transient("gave up", ErrConcurrency), ErrTransient, "TRANSIENT_FAILURE", "gave up"},
		{"unknown", errors.New("socket closed"), ErrInternal, "INTERNAL_ERROR", "internal server error"},
		{"retry after", WithRetryAfter(New(ErrRateLimited, "RATE_LIMITED", "wait"), time.Minute), ErrRateLimited, "RATE_LIMITED", "wait"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.Equal(t, tt.code, CodeOf(tt.err))
			assert.Equal(t, tt.message, MessageOf(tt.err))
		})
	}
}

func TestRetryAfterError(t *testing.T) {
	err := WithRetryAfter(errInsufficient, 1500*time.Millisecond)

	var ra *RetryAfterError
	assert.True(t, errors.As(err, &ra))
	assert.Equal(t, 1500*time.Millisecond, ra.After)
	assert.ErrorIs(t, err, errInsufficient)
}
