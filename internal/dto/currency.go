package dto

import (
	"time"

	"github.com/SscSPs/penger_ledger/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to create a new currency.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,currency_code"`
	Symbol       string `json:"symbol" binding:"required,max=10"`
	Name         string `json:"name" binding:"required,max=100"`
}

// UpdateCurrencyRequest defines the mutable fields of a currency. The code is the key and never changes.
type UpdateCurrencyRequest struct {
	Symbol   *string `json:"symbol" binding:"omitempty,min=1,max=10"`
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	IsActive *bool   `json:"isActive"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode string    `json:"currencyCode"`
	Symbol       string    `json:"symbol"`
	Name         string    `json:"name"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode: curr.CurrencyCode,
		Symbol:       curr.Symbol,
		Name:         curr.Name,
		IsActive:     curr.IsActive,
		CreatedAt:    curr.CreatedAt,
		UpdatedAt:    curr.UpdatedAt,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to a slice of CurrencyResponse DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, curr := range currencies {
		res[i] = ToCurrencyResponse(&curr)
	}
	return res
}

// ActiveOnlyParams filters reference data listings.
type ActiveOnlyParams struct {
	ActiveOnly bool `form:"activeOnly"`
}
