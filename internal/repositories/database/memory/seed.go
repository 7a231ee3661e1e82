package memory

import (
	"time"

	"github.com/SscSPs/penger_ledger/internal/core/domain"
	"github.com/google/uuid"
)

// Seed loads the same reference rows the SQL migrations insert.
func (s *Store) Seed(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	audit := domain.AuditFields{CreatedAt: now, UpdatedAt: now}
	for _, c := range []domain.Currency{
		{CurrencyCode: "USD", Name: "US Dollar", Symbol: "$"},
		{CurrencyCode: "EUR", Name: "Euro", Symbol: "€"},
		{CurrencyCode: "GBP", Name: "British Pound", Symbol: "£"},
		{CurrencyCode: "JPY", Name: "Japanese Yen", Symbol: "¥"},
		{CurrencyCode: "INR", Name: "Indian Rupee", Symbol: "₹"},
	} {
		c.IsActive = true
		c.AuditFields = audit
		s.currencies[c.CurrencyCode] = c
	}

	for _, t := range []domain.AccountType{
		{Name: "Savings", Description: "A basic savings account for storing money"},
		{Name: "Checking", Description: "A transactional account for day-to-day expenses"},
		{Name: "Investment", Description: "An account for investment activities"},
		{Name: "Credit Card", Description: "A credit card account"},
		{Name: "Loan", Description: "A loan account"},
	} {
		t.AccountTypeID = uuid.NewString()
		t.IsActive = true
		t.AuditFields = audit
		s.accountTypes[t.AccountTypeID] = t
	}
}
