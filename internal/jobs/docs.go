// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds field enabled).
//
// # Available Jobs
//
// 1. OutboxRelayJob - publishes pending lifecycle events from the outbox to the broker
//
// # Usage
//
//	relay := jobs.NewOutboxRelayJob(relayHandler, "* * * * * *", 50, m, logger)
//	jobManager := jobs.NewJobManager(relay)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Relay errors are logged; the messages stay pending and are retried on the next run
// - Failed job starts will stop any already running jobs
package jobs
