// Package jobs provides scheduled background tasks for the shipments service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. DocumentRetryJob - re-renders documents whose post-commit rendering
// failed and which still carry a pending/ placeholder reference
//
// # Usage
//
//	retry := jobs.NewDocumentRetryJob(renderPendingHandler, cfg.DocumentRetrySchedule, 50, logger)
//	jobManager := jobs.NewJobManager(retry)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field cron format with seconds. The default
// "0 * * * * *" runs once a minute.
//
// # Error Handling
//
// Job failures are logged and the next tick tries again. A failed document is
// left untouched and stays in the retry set.
package jobs
