package services

import (
	portsrepo "github.com/SscSPs/penger_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/penger_ledger/internal/core/ports/services"
	"github.com/SscSPs/penger_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, extra ...Option) *portssvc.ServiceContainer {
	options := append([]Option{
		WithRetryPolicy(RetryPolicy{MaxRetries: cfg.LedgerMaxRetries, BaseDelay: cfg.LedgerRetryBaseDelay}),
		WithUserDirectory(repos.UserRepo),
		WithAccountNumberPolicy(cfg.AccountNumberLength, cfg.AccountNumberMaxAttempts),
	}, extra...)

	otpPolicy := OTPPolicy{
		CodeLength:      cfg.OTPLength,
		DefaultTTL:      cfg.OTPTTL,
		MaxTTL:          cfg.OTPMaxTTL,
		ResendCooldown:  cfg.OTPResendCooldown,
		MaxCodeAttempts: DefaultOTPPolicy().MaxCodeAttempts,
	}

	return &portssvc.ServiceContainer{
		Account:     NewAccountService(repos.AccountRepo, repos.CurrencyRepo, repos.AccountTypeRepo, options...),
		Ledger:      NewLedgerService(repos.AccountRepo, options...),
		Transfer:    NewTransferService(repos.AccountRepo, options...),
		OTP:         NewOTPService(repos.OTPRepo, otpPolicy, options...),
		Currency:    NewCurrencyService(repos.CurrencyRepo, repos.AccountRepo, options...),
		AccountType: NewAccountTypeService(repos.AccountTypeRepo, repos.AccountRepo, options...),
		Health:      NewHealthService(repos.Health),
	}
}
