package apperrors

import (
	"fmt"
	"time"
)

// RetryAfterError decorates an error with the time a caller should wait before retrying.
type RetryAfterError struct {
	Err   error
	After time.Duration
}

// WithRetryAfter attaches a wait hint to err.
func WithRetryAfter(err error, after time.Duration) error {
	return &RetryAfterError{Err: err, After: after}
}

func (e *RetryAfterError) Error() string {
	return fmt.Sprintf("%v (retry after %s)", e.Err, e.After.Round(time.Second))
}

func (e *RetryAfterError) Unwrap() error {
	return e.Err
}
