package services

import "context"

// HealthSvc reports on the dependencies of the service.
type HealthSvc interface {
	// CheckStorage returns an error when the backing store is unreachable.
	CheckStorage(ctx context.Context) error
}

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account     AccountSvcFacade
	Ledger      LedgerSvc
	Transfer    TransferSvc
	OTP         OTPSvcFacade
	Currency    CurrencySvcFacade
	AccountType AccountTypeSvcFacade
	Health      HealthSvc
}
