package services

import "github.com/SscSPs/penger_ledger/internal/apperrors"

// Ledger errors.
var (
	ErrAccountNotFound   = apperrors.New(apperrors.ErrNotFound, "ACCOUNT_NOT_FOUND", "account not found")
	ErrInvalidAmount     = apperrors.New(apperrors.ErrValidation, "INVALID_AMOUNT", "amount must be greater than zero with at most 4 decimal places")
	ErrBalanceLimit      = apperrors.New(apperrors.ErrValidation, "BALANCE_LIMIT_EXCEEDED", "resulting balance exceeds the supported maximum")
	ErrInsufficientFunds = apperrors.New(apperrors.ErrStateConflict, "INSUFFICIENT_FUNDS", "insufficient funds")
	ErrInvalidTransfer   = apperrors.New(apperrors.ErrValidation, "INVALID_TRANSFER", "cannot transfer to the same account")
	ErrCurrencyMismatch  = apperrors.New(apperrors.ErrValidation, "CURRENCY_MISMATCH", "source and destination accounts use different currencies")
)

// OTP errors.
var (
	ErrOTPNotFound     = apperrors.New(apperrors.ErrNotFound, "OTP_NOT_FOUND", "OTP not found")
	ErrInvalidCode     = apperrors.New(apperrors.ErrNotFound, "INVALID_CODE", "invalid OTP code")
	ErrUserMismatch    = apperrors.New(apperrors.ErrValidation, "USER_MISMATCH", "OTP does not belong to this user")
	ErrPurposeMismatch = apperrors.New(apperrors.ErrValidation, "PURPOSE_MISMATCH", "OTP was issued for a different purpose")
	ErrOTPAlreadyUsed  = apperrors.New(apperrors.ErrStateConflict, "OTP_ALREADY_USED", "OTP has already been used")
	ErrOTPExpired      = apperrors.New(apperrors.ErrStateConflict, "OTP_EXPIRED", "OTP has expired")
	ErrRateLimited     = apperrors.New(apperrors.ErrRateLimited, "RATE_LIMITED", "please wait before requesting a new OTP")
	ErrMalformedCode   = apperrors.New(apperrors.ErrValidation, "MALFORMED_CODE", "OTP code must be 4 to 8 digits")
	ErrInvalidPurpose  = apperrors.New(apperrors.ErrValidation, "INVALID_PURPOSE", "OTP purpose is required")
	ErrInvalidTTL      = apperrors.New(apperrors.ErrValidation, "INVALID_TTL", "OTP expiry is out of the allowed range")
	ErrDuplicateCode   = apperrors.New(apperrors.ErrTransient, "OTP_CODE_COLLISION", "could not allocate a unique OTP code, please retry")
)

// Account management errors.
var (
	ErrUserNotFound           = apperrors.New(apperrors.ErrNotFound, "USER_NOT_FOUND", "user not found")
	ErrInvalidUser            = apperrors.New(apperrors.ErrValidation, "INVALID_USER", "user id is required")
	ErrCurrencyNotFound       = apperrors.New(apperrors.ErrNotFound, "CURRENCY_NOT_FOUND", "currency not found")
	ErrAccountTypeNotFound    = apperrors.New(apperrors.ErrNotFound, "ACCOUNT_TYPE_NOT_FOUND", "account type not found")
	ErrInactiveCurrency       = apperrors.New(apperrors.ErrValidation, "INACTIVE_CURRENCY", "currency is not active")
	ErrInactiveAccountType    = apperrors.New(apperrors.ErrValidation, "INACTIVE_ACCOUNT_TYPE", "account type is not active")
	ErrInvalidInitialBalance  = apperrors.New(apperrors.ErrValidation, "INVALID_INITIAL_BALANCE", "initial balance must be zero or more, below the maximum, with at most 4 decimal places")
	ErrNonZeroBalance         = apperrors.New(apperrors.ErrStateConflict, "NON_ZERO_BALANCE", "account balance must be zero before deletion")
	ErrAccountNumberExhausted = apperrors.New(apperrors.ErrTransient, "ACCOUNT_NUMBER_UNAVAILABLE", "could not allocate a unique account number, please retry")
	ErrInvalidPageToken       = apperrors.New(apperrors.ErrValidation, "INVALID_PAGE_TOKEN", "invalid pagination token")
)

// Reference data errors.
var (
	ErrInvalidCurrencyCode  = apperrors.New(apperrors.ErrValidation, "INVALID_CURRENCY_CODE", "currency code must be three upper-case letters")
	ErrDuplicateCurrency    = apperrors.New(apperrors.ErrDuplicate, "CURRENCY_EXISTS", "currency already exists")
	ErrCurrencyInUse        = apperrors.New(apperrors.ErrReferenced, "CURRENCY_IN_USE", "currency is used by existing accounts")
	ErrInvalidAccountType   = apperrors.New(apperrors.ErrValidation, "INVALID_ACCOUNT_TYPE", "account type name is required")
	ErrDuplicateAccountType = apperrors.New(apperrors.ErrDuplicate, "ACCOUNT_TYPE_EXISTS", "account type already exists")
	ErrAccountTypeInUse     = apperrors.New(apperrors.ErrReferenced, "ACCOUNT_TYPE_IN_USE", "account type is used by existing accounts")
)
