package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// OutboxRelayer publishes a batch of stored change events and reports how many went out.
type OutboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob publishes stored change events. It runs on every Trigger and once a
// second, which retries events whose publication failed. Runs never overlap.
type OutboxRelayJob struct {
	relayer   OutboxRelayer
	batchSize int
	cron      *cron.Cron
	wake      chan struct{}
	cancel    context.CancelFunc
	done      sync.WaitGroup
	logger    *slog.Logger
}

// NewOutboxRelayJob creates the relay job. batchSize bounds a single run; a full batch
// schedules another run right away.
func NewOutboxRelayJob(relayer OutboxRelayer, batchSize int, logger *slog.Logger) *OutboxRelayJob {
	if batchSize <= 0 {
		batchSize = commands.DefaultRelayBatchSize
	}
	return &OutboxRelayJob{
		relayer:   relayer,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds()),
		wake:      make(chan struct{}, 1),
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

// Trigger asks for a run without waiting for it. Triggers that arrive while a run is
// already queued are merged into it.
func (j *OutboxRelayJob) Trigger() {
	select {
	case j.wake <- struct{}{}:
	default:
	}
}

// Start begins relaying on triggers and every second.
func (j *OutboxRelayJob) Start() error {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc("* * * * * *", j.Trigger); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel
	j.done.Add(1)
	go j.loop(ctx, cmd)

	j.cron.Start()
	j.logger.InfoContext(ctx, "Outbox relay job started (running every second and on demand)", "batch_size", j.batchSize)
	return nil
}

// Stop stops scheduling and waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	if j.cancel != nil {
		j.cancel()
		j.done.Wait()
	}
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

func (j *OutboxRelayJob) loop(ctx context.Context, cmd commands.RelayOutboxCommand) {
	defer j.done.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-j.wake:
		}

		published, err := j.relayer.Handle(ctx, cmd)
		switch {
		case err != nil && errors.Is(err, context.Canceled):
			return
		case err != nil:
			// Unpublished events stay in the outbox; the next tick retries them.
			if errors.Is(err, errs.ErrCollaboratorUnavailable) {
				j.logger.WarnContext(ctx, "Outbox relay postponed", "published", published, "error", err)
			} else {
				j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
			}
		case published > 0:
			j.logger.DebugContext(ctx, "Outbox events relayed", "published", published)
			if published == j.batchSize {
				j.Trigger()
			}
		}
	}
}
