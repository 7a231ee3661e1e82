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
	"github.com/SscSPs/penger_ledger/internal/utils"
)

type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
	accountRepo  portsrepo.AccountReader
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, accountRepo portsrepo.AccountReader, options ...Option) portssvc.CurrencySvcFacade {
	opts := newServiceOptions(options...)
	return &currencyService{
		BaseService:  BaseService{clock: opts.clock},
		currencyRepo: currencyRepo,
		accountRepo:  accountRepo,
	}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest) (*domain.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if !utils.IsCurrencyCode(code) {
		return nil, ErrInvalidCurrencyCode
	}
	now := s.Now()
	currency := domain.Currency{
		CurrencyCode: code,
		Symbol:       strings.TrimSpace(req.Symbol),
		Name:         strings.TrimSpace(req.Name),
		IsActive:     true,
		AuditFields:  domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogWarn(ctx, err, "Currency creation rejected", slog.String("currency_code", code))
			return nil, ErrDuplicateCurrency
		}
		s.LogError(ctx, err, "Failed to save currency", slog.String("currency_code", code))
		return nil, err
	}
	s.LogInfo(ctx, "Currency created", slog.String("currency_code", code))
	return &currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(currencyCode))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrCurrencyNotFound
		}
		s.LogError(ctx, err, "Failed to get currency", slog.String("currency_code", currencyCode))
		return nil, err
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, err
	}
	return currencies, nil
}

func (s *currencyService) UpdateCurrency(ctx context.Context, currencyCode string, req dto.UpdateCurrencyRequest) (*domain.Currency, error) {
	currency, err := s.GetCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, err
	}
	if req.Symbol != nil {
		currency.Symbol = strings.TrimSpace(*req.Symbol)
	}
	if req.Name != nil {
		currency.Name = strings.TrimSpace(*req.Name)
	}
	if req.IsActive != nil {
		currency.IsActive = *req.IsActive
	}
	return s.save(ctx, currency)
}

func (s *currencyService) ToggleCurrencyStatus(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.GetCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, err
	}
	currency.IsActive = !currency.IsActive
	return s.save(ctx, currency)
}

func (s *currencyService) save(ctx context.Context, currency *domain.Currency) (*domain.Currency, error) {
	currency.UpdatedAt = s.Now()
	if err := s.currencyRepo.UpdateCurrency(ctx, *currency); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrCurrencyNotFound
		}
		s.LogError(ctx, err, "Failed to update currency", slog.String("currency_code", currency.CurrencyCode))
		return nil, err
	}
	s.LogInfo(ctx, "Currency updated",
		slog.String("currency_code", currency.CurrencyCode),
		slog.Bool("is_active", currency.IsActive))
	return currency, nil
}

// DeleteCurrency removes a currency no account refers to.
func (s *currencyService) DeleteCurrency(ctx context.Context, currencyCode string) error {
	code := strings.ToUpper(currencyCode)
	inUse, err := s.accountRepo.CountAccountsByCurrency(ctx, code)
	if err != nil {
		s.LogError(ctx, err, "Failed to count accounts by currency", slog.String("currency_code", code))
		return err
	}
	if inUse > 0 {
		s.LogWarn(ctx, ErrCurrencyInUse, "Currency deletion rejected",
			slog.String("currency_code", code), slog.Int("accounts", inUse))
		return ErrCurrencyInUse
	}
	if err := s.currencyRepo.DeleteCurrency(ctx, code); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return ErrCurrencyNotFound
		case errors.Is(err, apperrors.ErrReferenced):
			return ErrCurrencyInUse.Wrap(err)
		}
		s.LogError(ctx, err, "Failed to delete currency", slog.String("currency_code", code))
		return err
	}
	s.LogInfo(ctx, "Currency deleted", slog.String("currency_code", code))
	return nil
}
