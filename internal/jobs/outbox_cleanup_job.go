package jobs

import (
	"context"
	"log/slog"
	"time"

	"restaurant/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultCleanupSchedule runs the cleanup at the start of every hour.
	DefaultCleanupSchedule = "0 0 * * * *"

	// DefaultOutboxRetention keeps published events for a day.
	DefaultOutboxRetention = 24 * time.Hour
)

// OutboxCleaner deletes published change events older than a retention window.
type OutboxCleaner interface {
	Handle(ctx context.Context, cmd commands.CleanupOutboxCommand) (int64, error)
}

// OutboxCleanupJob prunes the outbox on a cron schedule.
type OutboxCleanupJob struct {
	cleaner   OutboxCleaner
	schedule  string
	retention time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewOutboxCleanupJob(cleaner OutboxCleaner, schedule string, retention time.Duration, logger *slog.Logger) *OutboxCleanupJob {
	if schedule == "" {
		schedule = DefaultCleanupSchedule
	}
	return &OutboxCleanupJob{
		cleaner:   cleaner,
		schedule:  schedule,
		retention: retention,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "outbox_cleanup_job"),
	}
}

// Start registers the cleanup with the scheduler.
func (j *OutboxCleanupJob) Start() error {
	cmd, err := commands.NewCleanupOutboxCommand(j.retention)
	if err != nil {
		return err
	}

	_, err = j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		deleted, err := j.cleaner.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Outbox cleanup job failed", "error", err)
			return
		}
		if deleted > 0 {
			j.logger.InfoContext(ctx, "Published outbox events pruned", "deleted", deleted)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox cleanup job started", "schedule", j.schedule, "retention", j.retention.String())
	return nil
}

// Stop stops the scheduler and waits for a running cleanup.
func (j *OutboxCleanupJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox cleanup job stopped")
}
