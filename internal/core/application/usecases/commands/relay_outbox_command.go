package commands

import (
	"errors"
	"time"

	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

const (
	DefaultRelayBatchSize = 100
	maxRelayBatchSize     = 1000
)

var (
	ErrRelayOutboxCommandIsNotConstructed = errors.New(
		"RelayOutboxCommand must be created via NewRelayOutboxCommand constructor",
	)
	ErrCleanupOutboxCommandIsNotConstructed = errors.New(
		"CleanupOutboxCommand must be created via NewCleanupOutboxCommand constructor",
	)
)

// RelayOutboxCommand publishes up to BatchSize stored change events.
type RelayOutboxCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewRelayOutboxCommand(batchSize int) (RelayOutboxCommand, error) {
	if batchSize <= 0 || batchSize > maxRelayBatchSize {
		return RelayOutboxCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, maxRelayBatchSize)
	}
	return RelayOutboxCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}

func (c RelayOutboxCommand) BatchSize() int {
	return c.batchSize
}

// CleanupOutboxCommand prunes events that were published more than Retention ago.
type CleanupOutboxCommand struct {
	retention time.Duration

	guard guard.ConstructorGuard
}

func NewCleanupOutboxCommand(retention time.Duration) (CleanupOutboxCommand, error) {
	if retention < time.Minute {
		return CleanupOutboxCommand{}, errs.NewValueIsOutOfRangeError("retention", retention, time.Minute, "unbounded")
	}
	return CleanupOutboxCommand{retention: retention, guard: guard.NewConstructorGuard()}, nil
}

func (c CleanupOutboxCommand) Validate() error {
	return c.guard.Validate(ErrCleanupOutboxCommandIsNotConstructed)
}

func (c CleanupOutboxCommand) Retention() time.Duration {
	return c.retention
}
