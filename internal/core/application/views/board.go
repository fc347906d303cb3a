// Package views holds client-side projections of the change feed.
package views

import (
	"slices"
	"strings"
	"time"

	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// Entry is one order card on a staff board.
type Entry struct {
	OrderID     kernel.UUID
	Number      string
	TableNumber int
	Status      order.Status
	PlacedAt    time.Time
	UpdatedAt   time.Time
}

// Board is the live list of orders a waiter or the kitchen works from. It is rebuilt
// from change events and tolerates at-least-once delivery: a repeated event, or one
// whose status is not ahead of what the board already knows, changes nothing.
//
// A Board is not safe for concurrent use.
type Board struct {
	tenantID    kernel.UUID
	visible     map[order.Status]bool
	oldestFirst bool

	entries map[kernel.UUID]Entry
	// ranks remembers the furthest status seen per order, including orders that left
	// the board, so late duplicates cannot bring them back.
	ranks map[kernel.UUID]order.Status
}

// NewBoard shows orders of tenantID whose status is one of visible. An empty visible
// list shows every unpaid order.
func NewBoard(tenantID kernel.UUID, oldestFirst bool, visible ...order.Status) *Board {
	if len(visible) == 0 {
		visible = []order.Status{order.Pending, order.Confirmed, order.Preparing, order.Ready, order.Served}
	}
	b := &Board{
		tenantID:    tenantID,
		visible:     make(map[order.Status]bool, len(visible)),
		oldestFirst: oldestFirst,
		entries:     make(map[kernel.UUID]Entry),
		ranks:       make(map[kernel.UUID]order.Status),
	}
	for _, s := range visible {
		b.visible[s] = true
	}
	return b
}

// NewKitchenBoard shows confirmed and preparing orders, oldest first.
func NewKitchenBoard(tenantID kernel.UUID) *Board {
	return NewBoard(tenantID, true, order.Confirmed, order.Preparing)
}

// NewWaiterBoard shows every unpaid order, newest first.
func NewWaiterBoard(tenantID kernel.UUID) *Board {
	return NewBoard(tenantID, false)
}

// Load seeds the board with a snapshot, typically the active orders query. Snapshot
// rows never move an order backwards.
func (b *Board) Load(snapshot []queries.OrderView) {
	for _, v := range snapshot {
		b.apply(Entry{
			OrderID:     v.ID,
			Number:      v.Number,
			TableNumber: v.TableNumber,
			Status:      v.Status,
			PlacedAt:    v.CreatedAt,
			UpdatedAt:   v.UpdatedAt,
		})
	}
}

// Apply folds event into the board and reports whether the board changed. Events of
// other tenants, duplicates and stale statuses return false.
func (b *Board) Apply(event order.ChangeEvent) bool {
	if !event.TenantID.IsEqual(b.tenantID) {
		return false
	}

	e := Entry{
		OrderID:     event.OrderID,
		Number:      event.OrderNumber(),
		TableNumber: event.TableNumber,
		Status:      event.NewStatus,
		UpdatedAt:   event.OccurredAt,
	}
	if event.Kind == order.EventPlaced {
		e.PlacedAt = event.OccurredAt
	}
	return b.apply(e)
}

func (b *Board) apply(e Entry) bool {
	if e.Status.Validate() != nil {
		return false
	}
	if known, ok := b.ranks[e.OrderID]; ok && e.Status <= known {
		return false
	}
	b.ranks[e.OrderID] = e.Status

	previous, onBoard := b.entries[e.OrderID]
	if !b.visible[e.Status] {
		delete(b.entries, e.OrderID)
		return onBoard
	}

	if onBoard && !previous.PlacedAt.IsZero() {
		e.PlacedAt = previous.PlacedAt
	}
	if e.PlacedAt.IsZero() {
		e.PlacedAt = e.UpdatedAt
	}
	b.entries[e.OrderID] = e
	return true
}

// Status returns the furthest status the board has seen for id.
func (b *Board) Status(id kernel.UUID) (order.Status, bool) {
	s, ok := b.ranks[id]
	return s, ok
}

// Entries returns the visible orders sorted by placement time.
func (b *Board) Entries() []Entry {
	entries := make([]Entry, 0, len(b.entries))
	for _, e := range b.entries {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(x, y Entry) int {
		c := x.PlacedAt.Compare(y.PlacedAt)
		if c == 0 {
			c = strings.Compare(x.OrderID.String(), y.OrderID.String())
		}
		if !b.oldestFirst {
			c = -c
		}
		return c
	})
	return entries
}

// Len is the number of visible orders.
func (b *Board) Len() int {
	return len(b.entries)
}
