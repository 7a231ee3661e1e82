package dto

import (
	"time"

	"github.com/SscSPs/penger_ledger/internal/core/domain"
)

// GenerateOTPRequest asks for a new code. UserID defaults to the authenticated user and may not name anyone else.
type GenerateOTPRequest struct {
	UserID        string `json:"userID"`
	Purpose       string `json:"purpose" binding:"required,max=50" example:"Verification"`
	ExpiryMinutes int    `json:"expiryMinutes" binding:"omitempty,min=1" example:"5"`
}

// ResendOTPRequest asks for a fresh code for the same purpose.
type ResendOTPRequest struct {
	UserID  string `json:"userID"`
	Purpose string `json:"purpose" binding:"required,max=50"`
}

// VerifyOTPRequest submits a code for verification.
// Code format is checked by the OTP service and reported as MALFORMED_CODE.
type VerifyOTPRequest struct {
	UserID  string `json:"userID"`
	Code    string `json:"code" binding:"required"`
	Purpose string `json:"purpose" binding:"required,max=50"`
}

// OTPResponse is returned once, when a code is issued.
type OTPResponse struct {
	OTPID     string    `json:"otpID"`
	Code      string    `json:"code"`
	Purpose   string    `json:"purpose"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ToOTPResponse converts a freshly issued domain.OTP, code included.
func ToOTPResponse(otp *domain.OTP) OTPResponse {
	return OTPResponse{
		OTPID:     otp.OTPID,
		Code:      otp.Code,
		Purpose:   otp.Purpose,
		ExpiresAt: otp.ExpiresAt,
	}
}

// VerifyOTPResponse is the receipt of a successful verification.
type VerifyOTPResponse struct {
	Verified   bool      `json:"verified"`
	Purpose    string    `json:"purpose"`
	VerifiedAt time.Time `json:"verifiedAt"`
}

// ToVerifyOTPResponse converts a domain.OTPVerification.
func ToVerifyOTPResponse(v *domain.OTPVerification) VerifyOTPResponse {
	return VerifyOTPResponse{Verified: true, Purpose: v.Purpose, VerifiedAt: v.VerifiedAt}
}

// OTPSummaryResponse describes a past OTP. The code is never exposed.
type OTPSummaryResponse struct {
	OTPID     string           `json:"otpID"`
	Purpose   string           `json:"purpose"`
	Status    domain.OTPStatus `json:"status"`
	IsUsed    bool             `json:"isUsed"`
	IsExpired bool             `json:"isExpired"`
	IsValid   bool             `json:"isValid"`
	ExpiresAt time.Time        `json:"expiresAt"`
	CreatedAt time.Time        `json:"createdAt"`
}

// ToOTPSummaryResponse converts a domain.OTP, deriving its state at now.
func ToOTPSummaryResponse(otp *domain.OTP, now time.Time) OTPSummaryResponse {
	return OTPSummaryResponse{
		OTPID:     otp.OTPID,
		Purpose:   otp.Purpose,
		Status:    otp.Status(now),
		IsUsed:    otp.IsUsed,
		IsExpired: otp.IsExpired(now),
		IsValid:   otp.IsValid(now),
		ExpiresAt: otp.ExpiresAt,
		CreatedAt: otp.CreatedAt,
	}
}

// ListOTPHistoryParams defines query parameters for the OTP history.
type ListOTPHistoryParams struct {
	Limit     int    `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// OTPHistoryResponse is one page of OTP summaries.
type OTPHistoryResponse struct {
	Items     []OTPSummaryResponse `json:"items"`
	NextToken string               `json:"nextToken,omitempty"`
}

// CleanupOTPsResponse reports how many expired OTPs were removed.
type CleanupOTPsResponse struct {
	Deleted int64 `json:"deleted"`
}
