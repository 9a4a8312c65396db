// Package jobs provides the scheduled background tasks of the dashboard.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. PollRefreshJob - Posts a timer refresh request on a fixed interval
// (default 10s) so the view keeps converging on backend state even when the
// push connection is down.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(engine, pollInterval, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Refresh requests are fire-and-forget: the engine coalesces them and
// handles cycle failures itself, so a tick never has an error to report.
package jobs
