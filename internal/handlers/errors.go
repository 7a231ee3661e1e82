package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/SscSPs/penger_ledger/internal/apperrors"
	"github.com/SscSPs/penger_ledger/internal/dto"
	"github.com/SscSPs/penger_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// OTP verification rejections that are the caller's fault rather than a missing resource.
var badRequestCodes = map[string]bool{
	"INVALID_CODE":     true,
	"USER_MISMATCH":    true,
	"PURPOSE_MISMATCH": true,
}

// statusForError maps an error kind to an HTTP status.
func statusForError(err error) int {
	if badRequestCodes[apperrors.CodeOf(err)] {
		return http.StatusBadRequest
	}
	switch apperrors.KindOf(err) {
	case apperrors.ErrNotFound:
		return http.StatusNotFound
	case apperrors.ErrValidation:
		return http.StatusBadRequest
	case apperrors.ErrDuplicate, apperrors.ErrStateConflict, apperrors.ErrReferenced:
		return http.StatusConflict
	case apperrors.ErrRateLimited:
		return http.StatusTooManyRequests
	case apperrors.ErrTransient, apperrors.ErrConcurrency:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error": {"code", "message"}}.
func respondError(c *gin.Context, err error) {
	status := statusForError(err)
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.Int("status", status), slog.String("error", err.Error()))
	}

	var retryAfter *apperrors.RetryAfterError
	if errors.As(err, &retryAfter) {
		seconds := int((retryAfter.After + time.Second - 1) / time.Second)
		if seconds < 1 {
			seconds = 1
		}
		c.Header("Retry-After", strconv.Itoa(seconds))
	}

	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Error: dto.ErrorBody{Code: apperrors.CodeOf(err), Message: apperrors.MessageOf(err)},
	})
}

// respondBindError reports a request that failed binding or validation.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: dto.ErrorBody{Code: "VALIDATION_ERROR", Message: "Invalid request format: " + err.Error()},
	})
}

// requestUserID returns the authenticated user a request acts for. A userID
// named in the body or path must be that user; otherwise the request is
// aborted with 403 and ok is false.
func requestUserID(c *gin.Context, namedUserID string) (string, bool) {
	subject, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		abortUnauthorized(c)
		return "", false
	}
	if namedUserID != "" && namedUserID != subject {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Request names another user",
			slog.String("user_id", subject), slog.String("named_user_id", namedUserID))
		c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
			Error: dto.ErrorBody{Code: "FORBIDDEN", Message: "requests may only act for the authenticated user"},
		})
		return "", false
	}
	return subject, true
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: dto.ErrorBody{Code: "UNAUTHORIZED", Message: "Unauthorized"},
	})
}
