package services

import (
	"context"

	"github.com/SscSPs/penger_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/penger_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/penger_ledger/internal/core/ports/services"
)

type healthService struct {
	BaseService
	checker portsrepo.HealthChecker
}

// NewHealthService creates a HealthSvc over the store's health checker.
func NewHealthService(checker portsrepo.HealthChecker) portssvc.HealthSvc {
	return &healthService{checker: checker}
}

func (s *healthService) CheckStorage(ctx context.Context) error {
	if err := s.checker.Ping(ctx); err != nil {
		s.LogError(ctx, err, "Storage health check failed")
		return apperrors.Transient("storage unavailable", err)
	}
	return nil
}
