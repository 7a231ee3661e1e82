package services

import (
	"time"

	portsrepo "github.com/SscSPs/penger_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/penger_ledger/internal/utils"
)

// serviceOptions carries the collaborators shared by the service constructors.
type serviceOptions struct {
	clock       func() time.Time
	random      utils.RandomSource
	retry       RetryPolicy
	users       portsrepo.UserReader
	numberLen   int
	numberTries int
}

// Option is a functional option for configuring services
type Option func(*serviceOptions)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(clock func() time.Time) Option {
	return func(o *serviceOptions) {
		o.clock = clock
	}
}

// WithRandomSource replaces the source of OTP codes and account numbers.
func WithRandomSource(random utils.RandomSource) Option {
	return func(o *serviceOptions) {
		o.random = random
	}
}

// WithRetryPolicy bounds the retries of transactions that hit a concurrency conflict.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(o *serviceOptions) {
		o.retry = policy
	}
}

// WithUserDirectory enables user existence checks.
func WithUserDirectory(users portsrepo.UserReader) Option {
	return func(o *serviceOptions) {
		o.users = users
	}
}

// WithAccountNumberPolicy sets the length of generated account numbers and how
// many collisions are tolerated before giving up.
func WithAccountNumberPolicy(length, maxAttempts int) Option {
	return func(o *serviceOptions) {
		if length > 0 {
			o.numberLen = length
		}
		if maxAttempts > 0 {
			o.numberTries = maxAttempts
		}
	}
}

func newServiceOptions(options ...Option) serviceOptions {
	o := serviceOptions{
		random:      utils.NewCryptoRandom(),
		retry:       DefaultRetryPolicy,
		numberLen:   10,
		numberTries: 5,
	}
	for _, option := range options {
		option(&o)
	}
	return o
}
