package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/penger_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/penger_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/penger_ledger/internal/middleware"
	"github.com/sethvargo/go-retry"
)

// RetryPolicy bounds how often a unit of work is re-run after a concurrency conflict.
type RetryPolicy struct {
	MaxRetries uint64
	BaseDelay  time.Duration
}

// DefaultRetryPolicy retries three times starting at 25ms.
var DefaultRetryPolicy = RetryPolicy{MaxRetries: 3, BaseDelay: 25 * time.Millisecond}

func (p RetryPolicy) backoff() retry.Backoff {
	base := p.BaseDelay
	if base <= 0 {
		base = time.Millisecond
	}
	return retry.WithMaxRetries(p.MaxRetries, retry.WithJitterPercent(10, retry.NewExponential(base)))
}

// txRunner runs a function inside a transaction: commit on success, rollback on
// any error or panic. Units failing with apperrors.ErrConcurrency are re-run
// from scratch in a fresh transaction.
type txRunner struct {
	tm     portsrepo.TransactionManager
	policy RetryPolicy
}

func newTxRunner(tm portsrepo.TransactionManager, policy RetryPolicy) txRunner {
	return txRunner{tm: tm, policy: policy}
}

func (r txRunner) run(ctx context.Context, fn func(ctx context.Context, tx portsrepo.Tx) error) error {
	attempts := 0
	err := retry.Do(ctx, r.policy.backoff(), func(ctx context.Context) error {
		attempts++
		err := r.runOnce(ctx, fn)
		if errors.Is(err, apperrors.ErrConcurrency) {
			middleware.GetLoggerFromCtx(ctx).Warn("Transaction conflicted, retrying",
				slog.Int("attempt", attempts), slog.String("error", err.Error()))
			return retry.RetryableError(err)
		}
		return err
	})
	if errors.Is(err, apperrors.ErrConcurrency) {
		return apperrors.Transient(fmt.Sprintf("gave up after %d conflicting attempts", attempts), err)
	}
	return err
}

func (r txRunner) runOnce(ctx context.Context, fn func(ctx context.Context, tx portsrepo.Tx) error) (err error) {
	tx, err := r.tm.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = r.tm.Rollback(context.WithoutCancel(ctx), tx)
			panic(p)
		}
		if err != nil {
			if rbErr := r.tm.Rollback(context.WithoutCancel(ctx), tx); rbErr != nil {
				middleware.GetLoggerFromCtx(ctx).Error("Failed to rollback transaction",
					slog.String("error", rbErr.Error()))
			}
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	return r.tm.Commit(ctx, tx)
}
