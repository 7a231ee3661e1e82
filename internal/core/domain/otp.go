package domain

import "time"

// Well-known OTP purposes. Purpose is a free-form tag; these are only defaults.
const (
	PurposeVerification  = "Verification"
	PurposePasswordReset = "PasswordReset"
)

// OTPStatus is the derived life-cycle state of an OTP.
type OTPStatus string

const (
	OTPActive  OTPStatus = "ACTIVE"
	OTPUsed    OTPStatus = "USED" // consumed or superseded; storage does not distinguish the two
	OTPExpired OTPStatus = "EXPIRED"
)

// OTP is a short-lived, single-use numeric code scoped to a user and a purpose.
type OTP struct {
	OTPID     string    `json:"otpID"`
	UserID    string    `json:"userID"`
	Purpose   string    `json:"purpose"`
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsUsed    bool      `json:"isUsed"`
	AuditFields
}

// IsExpired reports whether the OTP is past its expiry at the given instant.
func (o OTP) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// IsValid reports whether the OTP can still be verified at the given instant.
func (o OTP) IsValid(now time.Time) bool {
	return !o.IsUsed && !o.IsExpired(now)
}

// Status returns the derived state at the given instant. Used wins over expired.
func (o OTP) Status(now time.Time) OTPStatus {
	switch {
	case o.IsUsed:
		return OTPUsed
	case o.IsExpired(now):
		return OTPExpired
	default:
		return OTPActive
	}
}
