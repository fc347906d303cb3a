// Package jobs provides background tasks for the ordering service.
//
// Scheduled jobs use github.com/robfig/cron/v3 with second precision.
//
// # Available Jobs
//
// 1. OutboxRelayJob - publishes stored change events right after a command triggers it,
// and every second to retry events whose publication failed
// 2. OutboxCleanupJob - deletes published change events older than the retention window
// 3. ChangeFeedListenerJob - keeps the Postgres LISTEN bridge running so events relayed
// by other instances reach local subscribers
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	relay := jobs.NewOutboxRelayJob(relayHandler, 100, logger)
//	cleanup := jobs.NewOutboxCleanupJob(cleanupHandler, jobs.DefaultCleanupSchedule, jobs.DefaultOutboxRetention, logger)
//
//	jobManager := jobs.NewJobManager(relay, cleanup)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// OutboxRelayJob doubles as commands.RelayTrigger for the order command handlers.
//
// # Error Handling
//
// - Relay failures leave events in the outbox; unavailable collaborators are logged as warnings
// - Failed job starts stop the jobs already running
package jobs
