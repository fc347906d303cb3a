package queries

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/pkg/errs"
)

// OrderReader loads an order aggregate; the kitchen ticket is rendered from the
// aggregate so the printed lines are exactly the captured ones.
type OrderReader interface {
	Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error)
}

type GetKitchenTicketQueryHandler struct {
	orders   OrderReader
	renderer services.KitchenTicketRenderer
	clock    kernel.Clock
}

func NewGetKitchenTicketQueryHandler(
	orders OrderReader,
	renderer services.KitchenTicketRenderer,
	clock kernel.Clock,
) GetKitchenTicketQueryHandler {
	return GetKitchenTicketQueryHandler{orders: orders, renderer: renderer, clock: clock}
}

// Handle returns the ticket text stamped with the current time. Pending orders have no
// ticket yet and yield a validation error.
func (h GetKitchenTicketQueryHandler) Handle(ctx context.Context, query GetKitchenTicketQuery) (string, error) {
	if err := query.Validate(); err != nil {
		return "", err
	}

	o, err := h.orders.Get(ctx, query.TenantID(), query.OrderID())
	if err != nil {
		return "", errs.Unavailable("database", err)
	}

	return h.renderer.Render(o, h.clock.Now())
}
