package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"equiphire-backend/internal/jobs"
	"equiphire-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	// Complete confirmed bookings whose drop date has passed
	_, err := s.cron.AddFunc(cfg.CompletePastDueBookings, s.jobs.CompletePastDueBookings)
	if err != nil {
		logger.Error("Failed to register CompletePastDueBookings job", "error", err)
	}

	// Cancel bookings the vendor never acted on
	_, err = s.cron.AddFunc(cfg.CancelStalePendingBookings, s.jobs.CancelStalePendingBookings)
	if err != nil {
		logger.Error("Failed to register CancelStalePendingBookings job", "error", err)
	}

	// Remind renters a day before the drop date
	_, err = s.cron.AddFunc(cfg.SendReturnReminders, s.jobs.SendReturnReminders)
	if err != nil {
		logger.Error("Failed to register SendReturnReminders job", "error", err)
	}

	// Expire abandoned payment orders
	_, err = s.cron.AddFunc(cfg.ExpireStalePaymentOrders, s.jobs.ExpireStalePaymentOrders)
	if err != nil {
		logger.Error("Failed to register ExpireStalePaymentOrders job", "error", err)
	}

	logger.Info("All cron jobs registered successfully")
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler is running
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
