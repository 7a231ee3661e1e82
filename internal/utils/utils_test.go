package utils

import (
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/penger_ledger/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCryptoRandomDigits(t *testing.T) {
	src := NewCryptoRandom()

	for _, n := range []int{1, 6, 10} {
		s, err := src.Digits(n)
		require.NoError(t, err)
		assert.Len(t, s, n)
		assert.True(t, IsDigits(s), "got %q", s)
	}

	_, err := src.Digits(0)
	assert.Error(t, err)
}

func TestCryptoRandomDigits_Concurrent(t *testing.T) {
	src := NewCryptoRandom()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := src.Digits(6)
			assert.NoError(t, err)
			assert.Len(t, s, 6)
		}()
	}
	wg.Wait()
}

func TestIsDigits(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"123456", true},
		{"000000", true},
		{"", false},
		{"12a456", false},
		{" 12345", false},
		{"١٢٣", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsDigits(tt.in), tt.in)
	}
}

func TestFormatWithCurrency(t *testing.T) {
	usd := domain.Currency{CurrencyCode: "USD", Symbol: "$"}

	assert.Equal(t, "$1234.50", FormatWithCurrency(decimal.RequireFromString("1234.5"), usd))
	assert.Equal(t, "$0.00", FormatWithCurrency(decimal.Zero, usd))
	assert.Equal(t, "$10.13", FormatWithCurrency(decimal.RequireFromString("10.125"), usd))
	assert.Equal(t, "12", FormatWithPrecision(decimal.RequireFromString("12.3456"), 0))
}

func TestParseAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("user-1", "secret", time.Hour, "penger")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "penger", claims.Issuer)

	_, err = ParseAndValidateJWT(token, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	expired, err := GenerateJWT("user-1", "secret", -time.Minute, "penger")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(expired, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestIsCurrencyCode(t *testing.T) {
	for code, want := range map[string]bool{
		"USD":  true,
		"EUR":  true,
		"usd":  false,
		"US":   false,
		"USDT": false,
		"U5D":  false,
		"":     false,
	} {
		assert.Equal(t, want, IsCurrencyCode(code), code)
	}
}
