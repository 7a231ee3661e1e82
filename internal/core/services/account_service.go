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
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo     portsrepo.AccountRepositoryWithTx
	currencyRepo    portsrepo.CurrencyReader
	accountTypeRepo portsrepo.AccountTypeReader
	users           portsrepo.UserReader
	random          utils.RandomSource
	numberLen       int
	numberTries     int
	tx              txRunner
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(
	accountRepo portsrepo.AccountRepositoryWithTx,
	currencyRepo portsrepo.CurrencyReader,
	accountTypeRepo portsrepo.AccountTypeReader,
	options ...Option,
) portssvc.AccountSvcFacade {
	opts := newServiceOptions(options...)
	return &accountService{
		BaseService:     BaseService{clock: opts.clock},
		accountRepo:     accountRepo,
		currencyRepo:    currencyRepo,
		accountTypeRepo: accountTypeRepo,
		users:           opts.users,
		random:          opts.random,
		numberLen:       opts.numberLen,
		numberTries:     opts.numberTries,
		tx:              newTxRunner(accountRepo, opts.retry),
	}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, ErrInvalidUser
	}
	if req.InitialBalance.IsNegative() || req.InitialBalance.GreaterThanOrEqual(domain.MaxBalance) ||
		!domain.FitsBalanceScale(req.InitialBalance) {
		s.LogWarn(ctx, ErrInvalidInitialBalance, "Account creation rejected", slog.String("user_id", userID))
		return nil, ErrInvalidInitialBalance
	}
	if s.users != nil {
		exists, err := s.users.UserExists(ctx, userID)
		if err != nil {
			s.LogError(ctx, err, "Failed to look up user", slog.String("user_id", userID))
			return nil, err
		}
		if !exists {
			s.LogWarn(ctx, ErrUserNotFound, "Account creation rejected", slog.String("user_id", userID))
			return nil, ErrUserNotFound
		}
	}
	if _, err := s.activeCurrency(ctx, req.CurrencyCode); err != nil {
		s.LogWarn(ctx, err, "Account creation rejected", slog.String("currency_code", req.CurrencyCode))
		return nil, err
	}
	if _, err := s.activeAccountType(ctx, req.AccountTypeID); err != nil {
		s.LogWarn(ctx, err, "Account creation rejected", slog.String("account_type_id", req.AccountTypeID))
		return nil, err
	}

	for attempt := 1; attempt <= s.numberTries; attempt++ {
		number, err := s.random.Digits(s.numberLen)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrInternal, "failed to generate account number", err)
		}
		now := s.Now()
		account := domain.Account{
			AccountID:     uuid.NewString(),
			AccountNumber: number,
			UserID:        userID,
			Name:          strings.TrimSpace(req.Name),
			CurrencyCode:  req.CurrencyCode,
			AccountTypeID: req.AccountTypeID,
			Balance:       req.InitialBalance,
			AuditFields:   domain.AuditFields{CreatedAt: now, UpdatedAt: now},
		}

		err = s.accountRepo.SaveAccount(ctx, account)
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogDebug(ctx, "Account number collision, drawing again", slog.Int("attempt", attempt))
			continue
		}
		if err != nil {
			s.LogError(ctx, err, "Failed to save account", slog.String("user_id", userID))
			return nil, err
		}

		s.LogInfo(ctx, "Account created successfully",
			slog.String("account_id", account.AccountID),
			slog.String("user_id", userID))
		return &account, nil
	}

	s.LogError(ctx, ErrAccountNumberExhausted, "Account creation failed", slog.Int("attempts", s.numberTries))
	return nil, ErrAccountNumberExhausted
}

func (s *accountService) activeCurrency(ctx context.Context, code string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrCurrencyNotFound
		}
		return nil, err
	}
	if !currency.IsActive {
		return nil, ErrInactiveCurrency
	}
	return currency, nil
}

func (s *accountService) activeAccountType(ctx context.Context, id string) (*domain.AccountType, error) {
	accountType, err := s.accountTypeRepo.FindAccountTypeByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrAccountTypeNotFound
		}
		return nil, err
	}
	if !accountType.IsActive {
		return nil, ErrInactiveAccountType
	}
	return accountType, nil
}

func (s *accountService) findAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		s.LogError(ctx, err, "Failed to get account by ID", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

// GetAccount fetches the account and then, explicitly, its currency and account type.
func (s *accountService) GetAccount(ctx context.Context, accountID string) (*domain.AccountDetails, error) {
	account, err := s.findAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, account)
}

// GetAccountByNumber is GetAccount keyed by the externally facing account number.
func (s *accountService) GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.AccountDetails, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, strings.TrimSpace(accountNumber))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		s.LogError(ctx, err, "Failed to get account by number")
		return nil, err
	}
	return s.details(ctx, account)
}

func (s *accountService) details(ctx context.Context, account *domain.Account) (*domain.AccountDetails, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, account.CurrencyCode)
	if err != nil {
		s.LogError(ctx, err, "Failed to load account currency", slog.String("account_id", account.AccountID))
		return nil, err
	}
	accountType, err := s.accountTypeRepo.FindAccountTypeByID(ctx, account.AccountTypeID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load account type", slog.String("account_id", account.AccountID))
		return nil, err
	}
	return &domain.AccountDetails{Account: *account, Currency: *currency, AccountType: *accountType}, nil
}

func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts by user", slog.String("user_id", userID))
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) GetBalance(ctx context.Context, accountID string) (*domain.AccountBalance, error) {
	account, err := s.findAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	formatted := utils.FormatWithPrecision(account.Balance, utils.DisplayPrecision)
	if currency, err := s.currencyRepo.FindCurrencyByCode(ctx, account.CurrencyCode); err == nil {
		formatted = utils.FormatWithCurrency(account.Balance, *currency)
	} else {
		s.LogDebug(ctx, "Currency lookup failed, formatting without symbol", slog.String("error", err.Error()))
	}
	return &domain.AccountBalance{
		AccountID:        account.AccountID,
		AccountNumber:    account.AccountNumber,
		CurrencyCode:     account.CurrencyCode,
		Balance:          account.Balance,
		FormattedBalance: formatted,
	}, nil
}

// UpdateAccount changes name and account type. The currency never changes.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.findAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	changed := false
	if req.Name != nil {
		if name := strings.TrimSpace(*req.Name); name != "" && name != account.Name {
			account.Name = name
			changed = true
		}
	}
	if req.AccountTypeID != nil && *req.AccountTypeID != account.AccountTypeID {
		if _, err := s.activeAccountType(ctx, *req.AccountTypeID); err != nil {
			s.LogWarn(ctx, err, "Account update rejected", slog.String("account_id", accountID))
			return nil, err
		}
		account.AccountTypeID = *req.AccountTypeID
		changed = true
	}
	if !changed {
		return account, nil
	}

	account.UpdatedAt = s.Now()
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount removes an account. The balance is checked on the locked row.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	err := s.tx.run(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		locked, err := lockAccounts(ctx, s.accountRepo, tx, accountID)
		if err != nil {
			return err
		}
		if !locked[accountID].Balance.IsZero() {
			return ErrNonZeroBalance
		}
		return s.accountRepo.DeleteAccountInTx(ctx, tx, accountID)
	})
	if err != nil {
		s.logFailure(ctx, err, "Account deletion failed", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}
