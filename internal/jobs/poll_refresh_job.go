package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"orderboard/internal/core/ports"

	"github.com/robfig/cron/v3"
)

const defaultPollInterval = 10 * time.Second

// PollRefreshJob is the timer update channel: it posts a refresh request on
// a fixed interval so the dashboard converges even when the tracking
// connection is down. The request goes through the same coalescing trigger
// as every other channel, so a busy engine absorbs the tick for free.
type PollRefreshJob struct {
	trigger  ports.RefreshTrigger
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPollRefreshJob creates the polling job. A non-positive interval falls
// back to 10s.
func NewPollRefreshJob(trigger ports.RefreshTrigger, interval time.Duration, logger *slog.Logger) *PollRefreshJob {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &PollRefreshJob{
		trigger:  trigger,
		interval: interval,
		cron:     cron.New(),
		logger:   logger.With("component", "poll_refresh_job"),
	}
}

// Start schedules the periodic refresh requests.
func (j *PollRefreshJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		j.trigger.RequestRefresh(ports.RefreshTimer)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Poll refresh job started", "interval", j.interval)
	return nil
}

// Stop stops the schedule. A tick already handed to the trigger still
// coalesces normally.
func (j *PollRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Poll refresh job stopped")
}
