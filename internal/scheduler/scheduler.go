package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"fleetrent-backend/internal/jobs"
	"fleetrent-backend/internal/logger"
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

	if _, err := s.cron.AddFunc(cfg.ExpireStaleBookings, s.jobs.ExpireStaleBookings); err != nil {
		logger.Error("Failed to register ExpireStaleBookings job", "error", err)
	}
	if _, err := s.cron.AddFunc(cfg.MarkActiveBookings, s.jobs.MarkActiveBookings); err != nil {
		logger.Error("Failed to register MarkActiveBookings job", "error", err)
	}
	if _, err := s.cron.AddFunc(cfg.MarkCompletedBookings, s.jobs.MarkCompletedBookings); err != nil {
		logger.Error("Failed to register MarkCompletedBookings job", "error", err)
	}
	if _, err := s.cron.AddFunc(cfg.DeactivateExpiredCoupons, s.jobs.DeactivateExpiredCoupons); err != nil {
		logger.Error("Failed to register DeactivateExpiredCoupons job", "error", err)
	}
	if _, err := s.cron.AddFunc(cfg.DeleteExpiredImages, s.jobs.DeleteExpiredImages); err != nil {
		logger.Error("Failed to register DeleteExpiredImages job", "error", err)
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
