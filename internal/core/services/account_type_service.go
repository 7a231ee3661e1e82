package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/penger_ledger/internal/apperrors"
	"github.com/SscSPs/penger_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/penger_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/penger_ledger/internal/core/ports/services"
	"github.com/SscSPs/penger_ledger/internal/dto"
	"github.com/google/uuid"
)

type accountTypeService struct {
	BaseService
	accountTypeRepo portsrepo.AccountTypeRepositoryFacade
	accountRepo     portsrepo.AccountReader
}

// NewAccountTypeService creates a new AccountTypeSvcFacade.
func NewAccountTypeService(accountTypeRepo portsrepo.AccountTypeRepositoryFacade, accountRepo portsrepo.AccountReader, options ...Option) portssvc.AccountTypeSvcFacade {
	opts := newServiceOptions(options...)
	return &accountTypeService{
		BaseService:     BaseService{clock: opts.clock},
		accountTypeRepo: accountTypeRepo,
		accountRepo:     accountRepo,
	}
}

var _ portssvc.AccountTypeSvcFacade = (*accountTypeService)(nil)

func (s *accountTypeService) CreateAccountType(ctx context.Context, req dto.CreateAccountTypeRequest) (*domain.AccountType, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidAccountType
	}
	now := s.Now()
	accountType := domain.AccountType{
		AccountTypeID: uuid.NewString(),
		Name:          name,
		Description:   strings.TrimSpace(req.Description),
		IsActive:      true,
		AuditFields:   domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.accountTypeRepo.SaveAccountType(ctx, accountType); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogWarn(ctx, err, "Account type creation rejected", slog.String("name", name))
			return nil, ErrDuplicateAccountType
		}
		s.LogError(ctx, err, "Failed to save account type", slog.String("name", name))
		return nil, err
	}
	s.LogInfo(ctx, "Account type created", slog.String("account_type_id", accountType.AccountTypeID))
	return &accountType, nil
}

func (s *accountTypeService) notFound(ctx context.Context, err error, key string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return ErrAccountTypeNotFound
	}
	s.LogError(ctx, err, "Failed to get account type", slog.String("key", key))
	return err
}

func (s *accountTypeService) GetAccountTypeByID(ctx context.Context, accountTypeID string) (*domain.AccountType, error) {
	accountType, err := s.accountTypeRepo.FindAccountTypeByID(ctx, accountTypeID)
	if err != nil {
		return nil, s.notFound(ctx, err, accountTypeID)
	}
	return accountType, nil
}

func (s *accountTypeService) GetAccountTypeByName(ctx context.Context, name string) (*domain.AccountType, error) {
	accountType, err := s.accountTypeRepo.FindAccountTypeByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, s.notFound(ctx, err, name)
	}
	return accountType, nil
}

func (s *accountTypeService) ListAccountTypes(ctx context.Context, activeOnly bool) ([]domain.AccountType, error) {
	types, err := s.accountTypeRepo.ListAccountTypes(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account types")
		return nil, err
	}
	return types, nil
}

func (s *accountTypeService) UpdateAccountType(ctx context.Context, accountTypeID string, req dto.UpdateAccountTypeRequest) (*domain.AccountType, error) {
	accountType, err := s.GetAccountTypeByID(ctx, accountTypeID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrInvalidAccountType
		}
		accountType.Name = name
	}
	if req.Description != nil {
		accountType.Description = strings.TrimSpace(*req.Description)
	}
	if req.IsActive != nil {
		accountType.IsActive = *req.IsActive
	}
	return s.save(ctx, accountType)
}

func (s *accountTypeService) ToggleAccountTypeStatus(ctx context.Context, accountTypeID string) (*domain.AccountType, error) {
	accountType, err := s.GetAccountTypeByID(ctx, accountTypeID)
	if err != nil {
		return nil, err
	}
	accountType.IsActive = !accountType.IsActive
	return s.save(ctx, accountType)
}

func (s *accountTypeService) save(ctx context.Context, accountType *domain.AccountType) (*domain.AccountType, error) {
	accountType.UpdatedAt = s.Now()
	if err := s.accountTypeRepo.UpdateAccountType(ctx, *accountType); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return nil, ErrAccountTypeNotFound
		case errors.Is(err, apperrors.ErrDuplicate):
			return nil, ErrDuplicateAccountType
		}
		s.LogError(ctx, err, "Failed to update account type", slog.String("account_type_id", accountType.AccountTypeID))
		return nil, err
	}
	s.LogInfo(ctx, "Account type updated", slog.String("account_type_id", accountType.AccountTypeID))
	return accountType, nil
}

func (s *accountTypeService) DeleteAccountType(ctx context.Context, accountTypeID string) error {
	inUse, err := s.accountRepo.CountAccountsByType(ctx, accountTypeID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count accounts by type", slog.String("account_type_id", accountTypeID))
		return err
	}
	if inUse > 0 {
		s.LogWarn(ctx, ErrAccountTypeInUse, "Account type deletion rejected",
			slog.String("account_type_id", accountTypeID), slog.Int("accounts", inUse))
		return ErrAccountTypeInUse
	}
	if err := s.accountTypeRepo.DeleteAccountType(ctx, accountTypeID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return ErrAccountTypeNotFound
		case errors.Is(err, apperrors.ErrReferenced):
			return ErrAccountTypeInUse.Wrap(err)
		}
		s.LogError(ctx, err, "Failed to delete account type", slog.String("account_type_id", accountTypeID))
		return err
	}
	s.LogInfo(ctx, "Account type deleted", slog.String("account_type_id", accountTypeID))
	return nil
}
