package jobs

import (
	"database/sql"

	"fleetrent-backend/internal/config"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/payment"
	"fleetrent-backend/internal/repository/postgres"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db      *sql.DB
	store   *postgres.Store
	gateway payment.Gateway
	config  *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, store *postgres.Store, gateway payment.Gateway, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:      db,
		store:   store,
		gateway: gateway,
		config:  cfg,
	}
}

// Config exposes the configuration to the scheduler for cron expressions
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once, for the cronjob binary's -run-once mode.
func (jr *JobRunner) RunAll() {
	jr.ExpireStaleBookings()
	jr.MarkActiveBookings()
	jr.MarkCompletedBookings()
	jr.DeactivateExpiredCoupons()
	jr.DeleteExpiredImages()
}
