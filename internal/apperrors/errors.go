package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrStateConflict indicates a declined operation: the request was well formed but the
// current state of the resource does not allow it (insufficient funds, used OTP, ...).
var ErrStateConflict = errors.New("state conflict")

// ErrRateLimited indicates that the caller must wait before retrying.
var ErrRateLimited = errors.New("rate limited")

// ErrConcurrency indicates lock or version contention with a concurrent writer.
// It is retried internally and never returned to callers as-is.
var ErrConcurrency = errors.New("concurrent modification")

// ErrTransient indicates a failure that may succeed if the caller retries later.
var ErrTransient = errors.New("transient failure")

// ErrReferenced indicates that a resource cannot be removed while other rows reference it.
var ErrReferenced = errors.New("resource is referenced")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError is a structured error carrying a machine-readable code, a human-readable
// message and the kind it belongs to. errors.Is matches both the AppError itself
// (by code) and its kind.
type AppError struct {
	Code    string
	Message string
	Kind    error
	Err     error
}

// New creates an AppError of the given kind.
func New(kind error, code, message string) *AppError {
	return &AppError{Code: code, Message: message, Kind: kind}
}

// NewAppError wraps an underlying error into an AppError of the given kind.
func NewAppError(kind error, message string, err error) *AppError {
	return &AppError{Code: codeForKind(kind), Message: message, Kind: kind, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Is reports whether target is an AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap returns a copy of e with err attached as the underlying cause.
func (e *AppError) Wrap(err error) *AppError {
	c := *e
	c.Err = err
	return &c
}

// Transient marks err as a transient failure, keeping the original cause in the chain.
func Transient(message string, err error) *AppError {
	return NewAppError(ErrTransient, message, err)
}

// KindOf returns the kind sentinel err belongs to, or ErrInternal when none matches.
func KindOf(err error) error {
	for _, kind := range []error{ErrNotFound, ErrValidation, ErrDuplicate, ErrStateConflict, ErrRateLimited, ErrTransient, ErrReferenced, ErrConcurrency} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrInternal
}

// CodeOf returns the machine-readable code of err.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != "" {
		return appErr.Code
	}
	return codeForKind(KindOf(err))
}

// MessageOf returns the human-readable message of err. Errors without an AppError in
// their chain produce a generic message so that internal details are not leaked.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	kind := KindOf(err)
	if kind == ErrInternal {
		return "internal server error"
	}
	return err.Error()
}

func codeForKind(kind error) string {
	switch kind {
	case ErrNotFound:
		return "NOT_FOUND"
	case ErrValidation:
		return "VALIDATION_ERROR"
	case ErrDuplicate:
		return "DUPLICATE"
	case ErrStateConflict:
		return "STATE_CONFLICT"
	case ErrRateLimited:
		return "RATE_LIMITED"
	case ErrConcurrency:
		return "CONCURRENT_MODIFICATION"
	case ErrTransient:
		return "TRANSIENT_FAILURE"
	case ErrReferenced:
		return "REFERENCED"
	default:
		return "INTERNAL_ERROR"
	}
}
