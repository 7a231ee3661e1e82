package dto

import (
	"time"

	"github.com/SscSPs/penger_ledger/internal/core/domain"
)

// CreateAccountTypeRequest defines the data needed to create an account type.
type CreateAccountTypeRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description" binding:"max=200"`
}

// UpdateAccountTypeRequest defines the mutable fields of an account type.
type UpdateAccountTypeRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=50"`
	Description *string `json:"description" binding:"omitempty,max=200"`
	IsActive    *bool   `json:"isActive"`
}

// AccountTypeResponse defines the data returned for an account type.
type AccountTypeResponse struct {
	AccountTypeID string    `json:"accountTypeID"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func ToAccountTypeResponse(t *domain.AccountType) AccountTypeResponse {
	return AccountTypeResponse{
		AccountTypeID: t.AccountTypeID,
		Name:          t.Name,
		Description:   t.Description,
		IsActive:      t.IsActive,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func ToListAccountTypeResponse(types []domain.AccountType) []AccountTypeResponse {
	res := make([]AccountTypeResponse, len(types))
	for i, t := range types {
		res[i] = ToAccountTypeResponse(&t)
	}
	return res
}
