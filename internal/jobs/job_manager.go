package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"orderboard/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	pollRefreshJob *PollRefreshJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(trigger ports.RefreshTrigger, pollInterval time.Duration, logger *slog.Logger) *JobManager {
	return &JobManager{
		pollRefreshJob: NewPollRefreshJob(trigger, pollInterval, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.pollRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start poll refresh job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.pollRefreshJob.Stop()
}
