package utils

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"
)

// RandomSource produces uniformly distributed numeric strings. Implementations must be
// safe for concurrent use.
type RandomSource interface {
	Digits(n int) (string, error)
}

// CryptoRandom draws digits from a cryptographically secure reader.
type CryptoRandom struct {
	reader io.Reader
}

// NewCryptoRandom returns a RandomSource backed by crypto/rand.
func NewCryptoRandom() *CryptoRandom {
	return &CryptoRandom{reader: rand.Reader}
}

var ten = big.NewInt(10)

// Digits returns a string of n decimal digits, each drawn uniformly. Leading zeros are kept.
func (r *CryptoRandom) Digits(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("digit count must be positive")
	}
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		d, err := rand.Int(r.reader, ten)
		if err != nil {
			return "", fmt.Errorf("failed to read random digit: %w", err)
		}
		sb.WriteByte(byte('0' + d.Int64()))
	}
	return sb.String(), nil
}

// IsDigits reports whether s is non-empty and made only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
