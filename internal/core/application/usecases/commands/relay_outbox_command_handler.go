package commands

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// RelayOutboxCommandHandler moves stored change events to the change feed.
//
// Events are fetched oldest first with their rows locked, published one by one, handed
// to the notifier and then marked published in the same transaction. If publishing
// fails the batch stops there; events already published are still marked and the rest
// stay pending for the next run. A crash between publishing and commit re-publishes the
// batch later, which is why consumers must be idempotent.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.ChangePublisher
	notifier   EventNotifier
	clock      kernel.Clock
}

func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.ChangePublisher,
	notifier EventNotifier,
	clock kernel.Clock,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		notifier:   notifier,
		clock:      clock,
	}
}

// Handle returns how many events were published.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, errs.Unavailable("database", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	events, err := outbox.FetchPending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, errs.Unavailable("database", err)
	}
	if len(events) == 0 {
		return 0, nil
	}

	published := make([]kernel.UUID, 0, len(events))
	var publishErr error
	for _, event := range events {
		if publishErr = h.publisher.Publish(ctx, event); publishErr != nil {
			publishErr = errs.Unavailable("change feed", publishErr)
			break
		}
		h.notifier.Notify(ctx, event)
		published = append(published, event.ID)
	}

	if len(published) > 0 {
		if err = outbox.MarkPublished(ctx, published, h.clock.Now()); err != nil {
			return 0, errs.Unavailable("database", err)
		}
		if err = uow.Commit(ctx); err != nil {
			return 0, errs.Unavailable("database", err)
		}
	}

	return len(published), publishErr
}

// CleanupOutboxCommandHandler deletes old published events.
type CleanupOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	clock      kernel.Clock
}

func NewCleanupOutboxCommandHandler(uowFactory OutboxUoWFactory, clock kernel.Clock) CleanupOutboxCommandHandler {
	return CleanupOutboxCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns how many events were deleted.
func (h CleanupOutboxCommandHandler) Handle(ctx context.Context, cmd CleanupOutboxCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, errs.Unavailable("database", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deleted, err := uow.OutboxRepository().DeletePublishedBefore(ctx, h.clock.Now().Add(-cmd.Retention()))
	if err != nil {
		return 0, errs.Unavailable("database", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, errs.Unavailable("database", err)
	}

	return deleted, nil
}
