// Package jobs provides scheduled background tasks built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// DraftExpirationJob cancels Draft orders whose order date is older than the configured
// TTL. It runs on a cron schedule, "@every 1m" by default, and never overlaps itself.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(orderService, cfg.DraftOrderTTL, cfg.DraftExpirationSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick. Orders that changed concurrently
// are skipped by the expiry use case and do not fail the sweep.
package jobs
