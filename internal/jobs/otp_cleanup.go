// Package jobs runs periodic maintenance on top of the application services.
package jobs

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/penger_ledger/internal/core/ports/services"
	"github.com/robfig/cron/v3"
)

const cleanupTimeout = time.Minute

// Scheduler runs the OTP cleanup on a cron schedule.
type Scheduler struct {
	cron       *cron.Cron
	otpService portssvc.OTPMaintenanceSvc
	schedule   string
	logger     *slog.Logger
}

// NewScheduler creates a scheduler. An empty schedule disables the cleanup job.
func NewScheduler(otpService portssvc.OTPMaintenanceSvc, schedule string, logger *slog.Logger) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	return &Scheduler{
		cron:       cron.New(cron.WithChain(cron.Recover(cronLogger))),
		otpService: otpService,
		schedule:   schedule,
		logger:     logger,
	}
}

// Start registers the cleanup job and starts the scheduler.
func (s *Scheduler) Start() error {
	if s.schedule == "" {
		s.logger.Info("OTP cleanup job disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(s.schedule, s.CleanupExpiredOTPs); err != nil {
		s.logger.Error("failed to schedule OTP cleanup job", slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("scheduled OTP cleanup job", slog.String("schedule", s.schedule))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler. The returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// CleanupExpiredOTPs deletes expired OTPs once.
func (s *Scheduler) CleanupExpiredOTPs() {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	deleted, err := s.otpService.CleanupExpiredOTPs(ctx)
	if err != nil {
		s.logger.Error("OTP cleanup failed", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("OTP cleanup finished", slog.Int64("deleted", deleted))
}
