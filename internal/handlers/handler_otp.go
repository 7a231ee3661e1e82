package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/penger_ledger/internal/core/ports/services"
	"github.com/SscSPs/penger_ledger/internal/dto"
	"github.com/SscSPs/penger_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// otpHandler handles the OTP life-cycle endpoints.
type otpHandler struct {
	otpService portssvc.OTPSvcFacade
	now        func() time.Time
}

func newOTPHandler(svc portssvc.OTPSvcFacade) *otpHandler {
	return &otpHandler{
		otpService: svc,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// registerOTPRoutes registers OTP routes. Issuing and verifying go through limit.
func registerOTPRoutes(rg *gin.RouterGroup, otpService portssvc.OTPSvcFacade, limit gin.HandlerFunc) {
	h := newOTPHandler(otpService)

	otps := rg.Group("/otps")
	{
		otps.POST("/generate", limit, h.generateOTP)
		otps.POST("/verify", limit, h.verifyOTP)
		otps.POST("/resend", limit, h.resendOTP)
		otps.GET("/users/:userID/history", h.listHistory)
		otps.GET("/:otpID", h.getOTP)
		otps.DELETE("/expired", h.cleanupExpired)
	}
}

// generateOTP godoc
// @Summary Generate an OTP
// @Description Issues a new code for (user, purpose), superseding any active one. The user defaults to the caller.
// @Tags otps
// @Accept  json
// @Produce  json
// @Param   otp body dto.GenerateOTPRequest true "OTP request"
// @Success 201 {object} dto.OTPResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 403 {object} dto.ErrorResponse "User is not the caller"
// @Security BearerAuth
// @Router /otps/generate [post]
func (h *otpHandler) generateOTP(c *gin.Context) {
	var req dto.GenerateOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requestUserID(c, req.UserID)
	if !ok {
		return
	}

	ttl := time.Duration(req.ExpiryMinutes) * time.Minute
	otp, err := h.otpService.GenerateOTP(c.Request.Context(), userID, req.Purpose, ttl)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToOTPResponse(otp))
}

// resendOTP godoc
// @Summary Resend an OTP
// @Description Issues a fresh code for (user, purpose) once the cool-down has elapsed
// @Tags otps
// @Accept  json
// @Produce  json
// @Param   otp body dto.ResendOTPRequest true "Resend request"
// @Success 201 {object} dto.OTPResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 429 {object} dto.ErrorResponse "Cool-down not elapsed; see Retry-After"
// @Failure 403 {object} dto.ErrorResponse "User is not the caller"
// @Security BearerAuth
// @Router /otps/resend [post]
func (h *otpHandler) resendOTP(c *gin.Context) {
	var req dto.ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requestUserID(c, req.UserID)
	if !ok {
		return
	}

	otp, err := h.otpService.ResendOTP(c.Request.Context(), userID, req.Purpose)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToOTPResponse(otp))
}

// verifyOTP godoc
// @Summary Verify an OTP
// @Description Consumes a code. A code verifies successfully at most once.
// @Tags otps
// @Accept  json
// @Produce  json
// @Param   otp body dto.VerifyOTPRequest true "Verification request"
// @Success 200 {object} dto.VerifyOTPResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid, malformed or mismatched code"
// @Failure 409 {object} dto.ErrorResponse "Code already used or expired"
// @Failure 403 {object} dto.ErrorResponse "User is not the caller"
// @Security BearerAuth
// @Router /otps/verify [post]
func (h *otpHandler) verifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requestUserID(c, req.UserID)
	if !ok {
		return
	}

	receipt, err := h.otpService.VerifyOTP(c.Request.Context(), userID, req.Code, req.Purpose)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVerifyOTPResponse(receipt))
}

// listHistory godoc
// @Summary List the OTP history of a user
// @Description Newest first. Codes are never returned.
// @Tags otps
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.OTPHistoryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 403 {object} dto.ErrorResponse "Another user's history"
// @Security BearerAuth
// @Router /otps/users/{userID}/history [get]
func (h *otpHandler) listHistory(c *gin.Context) {
	userID, ok := requestUserID(c, c.Param("userID"))
	if !ok {
		return
	}
	var params dto.ListOTPHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	otps, next, err := h.otpService.ListUserOTPs(c.Request.Context(), userID, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, err)
		return
	}

	now := h.now()
	items := make([]dto.OTPSummaryResponse, len(otps))
	for i := range otps {
		items[i] = dto.ToOTPSummaryResponse(&otps[i], now)
	}
	c.JSON(http.StatusOK, dto.OTPHistoryResponse{Items: items, NextToken: next})
}

// getOTP godoc
// @Summary Get one of the caller's OTPs
// @Description The code is never returned.
// @Tags otps
// @Produce  json
// @Param   otpID path string true "OTP ID"
// @Success 200 {object} dto.OTPSummaryResponse
// @Failure 404 {object} dto.ErrorResponse "OTP not found"
// @Security BearerAuth
// @Router /otps/{otpID} [get]
func (h *otpHandler) getOTP(c *gin.Context) {
	userID, ok := requestUserID(c, "")
	if !ok {
		return
	}
	otp, err := h.otpService.GetUserOTP(c.Request.Context(), userID, c.Param("otpID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOTPSummaryResponse(otp, h.now()))
}

// cleanupExpired godoc
// @Summary Delete expired OTPs
// @Tags otps
// @Produce  json
// @Success 200 {object} dto.CleanupOTPsResponse
// @Failure 500 {object} dto.ErrorResponse "Cleanup failed"
// @Security BearerAuth
// @Router /otps/expired [delete]
func (h *otpHandler) cleanupExpired(c *gin.Context) {
	deleted, err := h.otpService.CleanupExpiredOTPs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Expired OTPs cleaned up on request", slog.Int64("deleted", deleted))
	c.JSON(http.StatusOK, dto.CleanupOTPsResponse{Deleted: deleted})
}
