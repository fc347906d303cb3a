package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Listener runs until its context is cancelled.
type Listener interface {
	Run(ctx context.Context) error
}

// ChangeFeedListenerJob keeps a cross-process change feed listener running in the
// background.
type ChangeFeedListenerJob struct {
	listener Listener
	cancel   context.CancelFunc
	done     sync.WaitGroup
	logger   *slog.Logger
}

func NewChangeFeedListenerJob(listener Listener, logger *slog.Logger) *ChangeFeedListenerJob {
	return &ChangeFeedListenerJob{
		listener: listener,
		logger:   logger.With("component", "change_feed_listener_job"),
	}
}

func (j *ChangeFeedListenerJob) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel

	j.done.Add(1)
	go func() {
		defer j.done.Done()
		if err := j.listener.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			j.logger.ErrorContext(ctx, "Change feed listener stopped", "error", err)
		}
	}()

	j.logger.InfoContext(ctx, "Change feed listener job started")
	return nil
}

func (j *ChangeFeedListenerJob) Stop() {
	if j.cancel != nil {
		j.cancel()
		j.done.Wait()
	}
	j.logger.InfoContext(context.Background(), "Change feed listener job stopped")
}
