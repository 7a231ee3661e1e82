package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/penger_ledger/internal/apperrors"
	"github.com/SscSPs/penger_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/penger_ledger/internal/core/ports/services"
	"github.com/SscSPs/penger_ledger/internal/core/services"
	"github.com/SscSPs/penger_ledger/internal/dto"
	"github.com/SscSPs/penger_ledger/internal/handlers"
	"github.com/SscSPs/penger_ledger/internal/platform/config"
	"github.com/SscSPs/penger_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testUserID = "user-1"

type HandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	jwtSecret   string
	account     *MockAccountService
	ledger      *MockLedgerService
	transfer    *MockTransferService
	otp         *MockOTPService
	currency    *MockCurrencyService
	accountType *MockAccountTypeService
	health      *MockHealthService
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.account = new(MockAccountService)
	suite.ledger = new(MockLedgerService)
	suite.transfer = new(MockTransferService)
	suite.otp = new(MockOTPService)
	suite.currency = new(MockCurrencyService)
	suite.accountType = new(MockAccountTypeService)
	suite.health = new(MockHealthService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret, RateLimit: "1000-M"}
	container := &portssvc.ServiceContainer{
		Account:     suite.account,
		Ledger:      suite.ledger,
		Transfer:    suite.transfer,
		OTP:         suite.otp,
		Currency:    suite.currency,
		AccountType: suite.accountType,
		Health:      suite.health,
	}

	suite.router = gin.New()
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, container))
}

func (suite *HandlerTestSuite) TearDownTest() {
	t := suite.T()
	suite.account.AssertExpectations(t)
	suite.ledger.AssertExpectations(t)
	suite.transfer.AssertExpectations(t)
	suite.otp.AssertExpectations(t)
	suite.currency.AssertExpectations(t)
	suite.accountType.AssertExpectations(t)
	suite.health.AssertExpectations(t)
}

func (suite *HandlerTestSuite) token(userID string) string {
	token, err := utils.GenerateJWT(userID, suite.jwtSecret, time.Hour, "penger-test")
	suite.Require().NoError(err)
	return token
}

// do sends an authenticated request; a nil body sends none.
func (suite *HandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.token(testUserID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) errorCode(w *httptest.ResponseRecorder) string {
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error.Code
}

func amountEq(s string) any {
	want := decimal.RequireFromString(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func (suite *HandlerTestSuite) TestMissingToken() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("UNAUTHORIZED", suite.errorCode(w))
}

func (suite *HandlerTestSuite) TestHealth() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	suite.Equal(http.StatusOK, w.Code)

	suite.health.On("CheckStorage", mock.Anything).Return(errors.New("connection refused")).Once()
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/detailed", nil))
	suite.Equal(http.StatusServiceUnavailable, w.Code)

	var resp dto.HealthResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("degraded", resp.Status)
	suite.Equal("unavailable", resp.Checks["storage"])
}

func (suite *HandlerTestSuite) TestDeposit_Success() {
	receipt := &domain.BalanceReceipt{
		AccountID:     "acc-1",
		AccountNumber: "0000000001",
		CurrencyCode:  "USD",
		Amount:        decimal.RequireFromString("25.00"),
		Balance:       decimal.RequireFromString("125.00"),
		Timestamp:     time.Now().UTC(),
	}
	suite.ledger.On("Deposit", mock.Anything, "acc-1", amountEq("25.00")).Return(receipt, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/acc-1/deposit", map[string]any{"amount": "25.00"})
	suite.Equal(http.StatusOK, w.Code)

	var resp dto.BalanceReceiptResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Balance.Equal(decimal.NewFromInt(125)))
	suite.Equal("0000000001", resp.AccountNumber)
}

func (suite *HandlerTestSuite) TestWithdraw_InsufficientFunds() {
	suite.ledger.On("Withdraw", mock.Anything, "acc-1", amountEq("500")).Return(nil, services.ErrInsufficientFunds).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/acc-1/withdraw", map[string]any{"amount": 500})
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("INSUFFICIENT_FUNDS", suite.errorCode(w))
}

func (suite *HandlerTestSuite) TestDeposit_InvalidAmount() {
	suite.ledger.On("Deposit", mock.Anything, "acc-1", amountEq("0")).Return(nil, services.ErrInvalidAmount).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/acc-1/deposit", map[string]any{"amount": "0"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("INVALID_AMOUNT", suite.errorCode(w))
}

func (suite *HandlerTestSuite) TestTransfer() {
	suite.Run("success", func() {
		receipt := &domain.TransferReceipt{
			FromAccountNumber: "0000000001",
			ToAccountNumber:   "0000000002",
			Amount:            decimal.NewFromInt(30),
			CurrencyCode:      "USD",
			Timestamp:         time.Now().UTC(),
		}
		suite.transfer.On("Transfer", mock.Anything, "a", "b", amountEq("30")).Return(receipt, nil).Once()

		w := suite.do(http.MethodPost, "/api/v1/accounts/transfer", dto.TransferRequest{
			FromAccountID: "a", ToAccountID: "b", Amount: decimal.NewFromInt(30),
		})
		suite.Equal(http.StatusOK, w.Code)
	})

	suite.Run("missing destination fails binding", func() {
		w := suite.do(http.MethodPost, "/api/v1/accounts/transfer", map[string]any{"fromAccountID": "a", "amount": "1"})
		suite.Equal(http.StatusBadRequest, w.Code)
		suite.Equal("VALIDATION_ERROR", suite.errorCode(w))
	})

	suite.Run("exhausted retries are retryable", func() {
		suite.transfer.On("Transfer", mock.Anything, "a", "c", amountEq("5")).
			Return(nil, apperrors.Transient("gave up after 3 conflicting attempts", apperrors.ErrConcurrency)).Once()

		w := suite.do(http.MethodPost, "/api/v1/accounts/transfer", map[string]any{"fromAccountID": "a", "toAccountID": "c", "amount": "5"})
		suite.Equal(http.StatusServiceUnavailable, w.Code)
		suite.Equal("TRANSIENT_FAILURE", suite.errorCode(w))
	})
}

func (suite *HandlerTestSuite) TestCreateAccount() {
	suite.Run("user defaults to the caller", func() {
		account := &domain.Account{AccountID: "acc-9", AccountNumber: "1234567890", UserID: testUserID, Name: "Main", CurrencyCode: "USD", AccountTypeID: "t1"}
		suite.account.On("CreateAccount", mock.Anything, mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
			return req.UserID == testUserID && req.CurrencyCode == "usd" && req.InitialBalance.Equal(decimal.NewFromInt(10))
		})).Return(account, nil).Once()

		w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]any{
			"name": "Main", "currencyCode": "usd", "accountTypeID": "t1", "initialBalance": "10",
		})
		suite.Equal(http.StatusCreated, w.Code)
	})

	suite.Run("negative initial balance", func() {
		w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]any{
			"name": "Main", "currencyCode": "USD", "accountTypeID": "t1", "initialBalance": "-1",
		})
		suite.Equal(http.StatusBadRequest, w.Code)
		suite.Equal("VALIDATION_ERROR", suite.errorCode(w))
	})

	suite.Run("bad currency code", func() {
		w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]any{
			"name": "Main", "currencyCode": "US1", "accountTypeID": "t1",
		})
		suite.Equal(http.StatusBadRequest, w.Code)
	})
}

func (suite *HandlerTestSuite) TestGetAccount_FormatsBalance() {
	details := &domain.AccountDetails{
		Account:     domain.Account{AccountID: "acc-1", CurrencyCode: "EUR", Balance: decimal.RequireFromString("12.5")},
		Currency:    domain.Currency{CurrencyCode: "EUR", Symbol: "€", IsActive: true},
		AccountType: domain.AccountType{AccountTypeID: "t1", Name: "Savings"},
	}
	suite.account.On("GetAccount", mock.Anything, "acc-1").Return(details, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/acc-1", nil)
	suite.Equal(http.StatusOK, w.Code)

	var resp dto.AccountDetailsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("€12.50", resp.FormattedBalance)
	suite.Equal("Savings", resp.AccountType.Name)
}

func (suite *HandlerTestSuite) TestGetAccountByNumber() {
	details := &domain.AccountDetails{
		Account:     domain.Account{AccountID: "acc-1", AccountNumber: "4242424242", CurrencyCode: "USD", Balance: decimal.NewFromInt(3)},
		Currency:    domain.Currency{CurrencyCode: "USD", Symbol: "$", IsActive: true},
		AccountType: domain.AccountType{AccountTypeID: "t1", Name: "Checking"},
	}
	suite.account.On("GetAccountByNumber", mock.Anything, "4242424242").Return(details, nil).Once()
	suite.account.On("GetAccountByNumber", mock.Anything, "0000000000").Return(nil, services.ErrAccountNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/number/4242424242", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountDetailsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("$3.00", resp.FormattedBalance)

	w = suite.do(http.MethodGet, "/api/v1/accounts/number/0000000000", nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("ACCOUNT_NOT_FOUND", suite.errorCode(w))
}

func (suite *HandlerTestSuite) TestDeleteAccount_NonZeroBalance() {
	suite.account.On("DeleteAccount", mock.Anything, "acc-1").Return(services.ErrNonZeroBalance).Once()

	w := suite.do(http.MethodDelete, "/api/v1/accounts/acc-1", nil)
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("NON_ZERO_BALANCE", suite.errorCode(w))
}

func (suite *HandlerTestSuite) TestListAccounts_Paging() {
	suite.account.On("ListAccounts", mock.Anything, 5, 10).Return([]domain.Account{{AccountID: "a"}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts?limit=5&offset=10", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/accounts?limit=500", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGenerateOTP() {
	otp := &domain.OTP{OTPID: "otp-1", UserID: testUserID, Purpose: "Verification", Code: "123456", ExpiresAt: time.Now().Add(5 * time.Minute)}
	suite.otp.On("GenerateOTP", mock.Anything, testUserID, "Verification", 10*time.Minute).Return(otp, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/otps/generate", map[string]any{"purpose": "Verification", "expiryMinutes": 10})
	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.OTPResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("123456", resp.Code)
	suite.NotEmpty(w.Header().Get("X-RateLimit-Remaining"))
}

func (suite *HandlerTestSuite) TestVerifyOTP() {
	suite.Run("success", func() {
		suite.otp.On("VerifyOTP", mock.Anything, testUserID, "123456", "Verification").
			Return(&domain.OTPVerification{Purpose: "Verification", VerifiedAt: time.Now().UTC()}, nil).Once()

		w := suite.do(http.MethodPost, "/api/v1/otps/verify", map[string]any{"code": "123456", "purpose": "Verification"})
		suite.Equal(http.StatusOK, w.Code)

		var resp dto.VerifyOTPResponse
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		suite.True(resp.Verified)
	})

	rejections := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unknown code", services.ErrInvalidCode, http.StatusBadRequest, "INVALID_CODE"},
		{"other user", services.ErrUserMismatch, http.StatusBadRequest, "USER_MISMATCH"},
		{"other purpose", services.ErrPurposeMismatch, http.StatusBadRequest, "PURPOSE_MISMATCH"},
		{"already used", services.ErrOTPAlreadyUsed, http.StatusConflict, "OTP_ALREADY_USED"},
		{"expired", services.ErrOTPExpired, http.StatusConflict, "OTP_EXPIRED"},
		{"malformed", services.ErrMalformedCode, http.StatusBadRequest, "MALFORMED_CODE"},
	}
	for _, tc := range rejections {
		suite.Run(tc.name, func() {
			suite.otp.On("VerifyOTP", mock.Anything, testUserID, "999999", "Verification").Return(nil, tc.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/otps/verify", map[string]any{"code": "999999", "purpose": "Verification"})
			suite.Equal(tc.status, w.Code)
			suite.Equal(tc.code, suite.errorCode(w))
		})
	}
}

func (suite *HandlerTestSuite) TestResendOTP_CooldownSetsRetryAfter() {
	suite.otp.On("ResendOTP", mock.Anything, testUserID, "Verification").
		Return(nil, apperrors.WithRetryAfter(services.ErrRateLimited, 39500*time.Millisecond)).Once()

	w := suite.do(http.MethodPost, "/api/v1/otps/resend", map[string]any{"purpose": "Verification"})
	suite.Equal(http.StatusTooManyRequests, w.Code)
	suite.Equal("40", w.Header().Get("Retry-After"))
	suite.Equal("RATE_LIMITED", suite.errorCode(w))
}

func (suite *HandlerTestSuite) TestOTPHistory() {
	now := time.Now().UTC()
	otps := []domain.OTP{
		{OTPID: "o2", Purpose: "Verification", Code: "222222", ExpiresAt: now.Add(time.Minute)},
		{OTPID: "o1", Purpose: "Verification", Code: "111111", ExpiresAt: now.Add(-time.Minute)},
	}
	suite.otp.On("ListUserOTPs", mock.Anything, testUserID, 2, "").Return(otps, "next", nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/otps/users/user-1/history?limit=2", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.NotContains(w.Body.String(), "222222")

	var resp dto.OTPHistoryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Items, 2)
	suite.Equal(domain.OTPActive, resp.Items[0].Status)
	suite.Equal(domain.OTPExpired, resp.Items[1].Status)
	suite.Equal("next", resp.NextToken)
}

func (suite *HandlerTestSuite) TestGetOTP() {
	suite.Run("own OTP without its code", func() {
		otp := &domain.OTP{OTPID: "o1", UserID: testUserID, Purpose: "Verification", Code: "123456", ExpiresAt: time.Now().Add(time.Minute)}
		suite.otp.On("GetUserOTP", mock.Anything, testUserID, "o1").Return(otp, nil).Once()

		w := suite.do(http.MethodGet, "/api/v1/otps/o1", nil)
		suite.Equal(http.StatusOK, w.Code)
		suite.NotContains(w.Body.String(), "123456")

		var resp dto.OTPSummaryResponse
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		suite.Equal(domain.OTPActive, resp.Status)
	})

	suite.Run("not found", func() {
		suite.otp.On("GetUserOTP", mock.Anything, testUserID, "o9").Return(nil, services.ErrOTPNotFound).Once()

		w := suite.do(http.MethodGet, "/api/v1/otps/o9", nil)
		suite.Equal(http.StatusNotFound, w.Code)
		suite.Equal("OTP_NOT_FOUND", suite.errorCode(w))
	})
}

func (suite *HandlerTestSuite) TestActingForAnotherUserIsForbidden() {
	requests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"generate", http.MethodPost, "/api/v1/otps/generate", map[string]any{"userID": "user-2", "purpose": "Verification"}},
		{"verify", http.MethodPost, "/api/v1/otps/verify", map[string]any{"userID": "user-2", "code": "123456", "purpose": "Verification"}},
		{"resend", http.MethodPost, "/api/v1/otps/resend", map[string]any{"userID": "user-2", "purpose": "Verification"}},
		{"history", http.MethodGet, "/api/v1/otps/users/user-2/history", nil},
		{"create account", http.MethodPost, "/api/v1/accounts", map[string]any{"userID": "user-2", "name": "Main", "currencyCode": "USD", "accountTypeID": "t1"}},
		{"list accounts", http.MethodGet, "/api/v1/users/user-2/accounts", nil},
	}
	for _, tc := range requests {
		suite.Run(tc.name, func() {
			w := suite.do(tc.method, tc.path, tc.body)
			suite.Equal(http.StatusForbidden, w.Code)
			suite.Equal("FORBIDDEN", suite.errorCode(w))
		})
	}
}

func (suite *HandlerTestSuite) TestNamingTheCallerIsAllowed() {
	otp := &domain.OTP{OTPID: "otp-1", UserID: testUserID, Purpose: "Verification", Code: "123456", ExpiresAt: time.Now().Add(5 * time.Minute)}
	suite.otp.On("ResendOTP", mock.Anything, testUserID, "Verification").Return(otp, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/otps/resend", map[string]any{"userID": testUserID, "purpose": "Verification"})
	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *HandlerTestSuite) TestCleanupExpired() {
	suite.otp.On("CleanupExpiredOTPs", mock.Anything).Return(int64(4), nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/otps/expired", nil)
	suite.Equal(http.StatusOK, w.Code)

	var resp dto.CleanupOTPsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(4), resp.Deleted)
}

func (suite *HandlerTestSuite) TestCurrencies() {
	suite.Run("create rejects a bad code before the service", func() {
		w := suite.do(http.MethodPost, "/api/v1/currencies", map[string]any{"currencyCode": "EURO", "symbol": "€", "name": "Euro"})
		suite.Equal(http.StatusBadRequest, w.Code)
	})

	suite.Run("duplicate", func() {
		suite.currency.On("CreateCurrency", mock.Anything, dto.CreateCurrencyRequest{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar"}).
			Return(nil, services.ErrDuplicateCurrency).Once()

		w := suite.do(http.MethodPost, "/api/v1/currencies", map[string]any{"currencyCode": "USD", "symbol": "$", "name": "US Dollar"})
		suite.Equal(http.StatusConflict, w.Code)
		suite.Equal("CURRENCY_EXISTS", suite.errorCode(w))
	})

	suite.Run("list active only", func() {
		suite.currency.On("ListCurrencies", mock.Anything, true).Return([]domain.Currency{{CurrencyCode: "USD", IsActive: true}}, nil).Once()

		w := suite.do(http.MethodGet, "/api/v1/currencies?activeOnly=true", nil)
		suite.Equal(http.StatusOK, w.Code)
	})

	suite.Run("get by code", func() {
		suite.currency.On("GetCurrencyByCode", mock.Anything, "eur").Return(&domain.Currency{CurrencyCode: "EUR"}, nil).Once()

		w := suite.do(http.MethodGet, "/api/v1/currencies/code/eur", nil)
		suite.Equal(http.StatusOK, w.Code)
	})

	suite.Run("toggle", func() {
		suite.currency.On("ToggleCurrencyStatus", mock.Anything, "GBP").Return(&domain.Currency{CurrencyCode: "GBP", IsActive: false}, nil).Once()

		w := suite.do(http.MethodPatch, "/api/v1/currencies/GBP/toggle-status", nil)
		suite.Equal(http.StatusOK, w.Code)
	})

	suite.Run("delete in use", func() {
		suite.currency.On("DeleteCurrency", mock.Anything, "USD").Return(services.ErrCurrencyInUse).Once()

		w := suite.do(http.MethodDelete, "/api/v1/currencies/USD", nil)
		suite.Equal(http.StatusConflict, w.Code)
		suite.Equal("CURRENCY_IN_USE", suite.errorCode(w))
	})
}

func (suite *HandlerTestSuite) TestAccountTypes() {
	suite.Run("get by name", func() {
		suite.accountType.On("GetAccountTypeByName", mock.Anything, "Savings").Return(&domain.AccountType{AccountTypeID: "t1", Name: "Savings"}, nil).Once()

		w := suite.do(http.MethodGet, "/api/v1/account-types/name/Savings", nil)
		suite.Equal(http.StatusOK, w.Code)
	})

	suite.Run("not found", func() {
		suite.accountType.On("GetAccountTypeByID", mock.Anything, "missing").Return(nil, services.ErrAccountTypeNotFound).Once()

		w := suite.do(http.MethodGet, "/api/v1/account-types/missing", nil)
		suite.Equal(http.StatusNotFound, w.Code)
		suite.Equal("ACCOUNT_TYPE_NOT_FOUND", suite.errorCode(w))
	})

	suite.Run("create requires a name", func() {
		w := suite.do(http.MethodPost, "/api/v1/account-types", map[string]any{"description": "no name"})
		suite.Equal(http.StatusBadRequest, w.Code)
	})

	suite.Run("delete", func() {
		suite.accountType.On("DeleteAccountType", mock.Anything, "t1").Return(nil).Once()

		w := suite.do(http.MethodDelete, "/api/v1/account-types/t1", nil)
		suite.Equal(http.StatusNoContent, w.Code)
	})
}

func (suite *HandlerTestSuite) TestUnexpectedErrorsAreHidden() {
	suite.account.On("GetBalance", mock.Anything, "acc-1").Return(nil, errors.New("pq: connection reset by peer")).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/acc-1/balance", nil)
	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "connection reset")
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
