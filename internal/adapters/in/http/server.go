package http

import (
	"log/slog"
	"net/http"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const defaultHeartbeat = 15 * time.Second

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	// Command handlers
	PlaceOrder              commands.PlaceOrderCommandHandler
	AdvanceOrder            commands.AdvanceOrderCommandHandler
	CreateTenant            commands.CreateTenantCommandHandler
	CreateTable             commands.CreateTableCommandHandler
	CreateMenuItem          commands.CreateMenuItemCommandHandler
	SetMenuItemAvailability commands.SetMenuItemAvailabilityCommandHandler
	RegisterDevice          commands.RegisterDeviceCommandHandler
	CreateInventoryItem     commands.CreateInventoryItemCommandHandler
	AdjustInventory         commands.AdjustInventoryCommandHandler

	// Query handlers
	GetMenu          queries.GetMenuQueryHandler
	GetOrder         queries.GetOrderQueryHandler
	GetActiveOrders  queries.GetActiveOrdersQueryHandler
	GetKitchenTicket queries.GetKitchenTicketQueryHandler
	GetDailySales    queries.GetDailySalesQueryHandler
	GetTables        queries.GetTablesQueryHandler
	GetInventory     queries.GetInventoryQueryHandler
}

// Server handles HTTP requests by translating them into commands and queries.
type Server struct {
	handlers  Handlers
	feed      ports.ChangeFeed
	baseURL   string
	heartbeat time.Duration
	logger    *slog.Logger
}

// NewServer creates a server. baseURL is the public address QR codes point to.
func NewServer(handlers Handlers, feed ports.ChangeFeed, baseURL string, logger *slog.Logger) *Server {
	return &Server{
		handlers:  handlers,
		feed:      feed,
		baseURL:   baseURL,
		heartbeat: defaultHeartbeat,
		logger:    logger.With("component", "http_server"),
	}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GetMenu handles GET /api/v1/menu?table={token}.
func (s *Server) GetMenu(ctx echo.Context) error {
	token, err := queryString(ctx.QueryParams(), "table", true)
	if err != nil {
		return err
	}

	query, err := queries.NewGetMenuQuery(token)
	if err != nil {
		return err
	}

	menu, err := s.handlers.GetMenu.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toMenu(menu))
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req PlaceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	lines := make([]commands.OrderLine, len(req.Items))
	for i, item := range req.Items {
		id, err := kernel.UUIDFromBytes(item.MenuItemID[:])
		if err != nil {
			return err
		}
		lines[i] = commands.OrderLine{MenuItemID: id, Quantity: item.Quantity}
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(orderID, req.TableToken, req.Customer.Name, req.Customer.Phone, lines, req.Notes)
	if err != nil {
		return err
	}

	placed, err := s.handlers.PlaceOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, toOrder(queries.NewOrderView(placed)))
}

// GetOrder handles GET /api/v1/tenants/{tenantId}/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context) error {
	tenantID, err := pathUUID(ctx, "tenantId")
	if err != nil {
		return err
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return s.respondOrder(ctx, http.StatusOK, tenantID, orderID)
}

// AdvanceOrder handles POST /api/v1/tenants/{tenantId}/orders/{orderId}/status.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	tenantID, err := pathUUID(ctx, "tenantId")
	if err != nil {
		return err
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	role, err := actorRole(ctx)
	if err != nil {
		return err
	}

	var req AdvanceOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAdvanceOrderCommand(tenantID, orderID, target, role)
	if err != nil {
		return err
	}
	if err = s.handlers.AdvanceOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondOrder(ctx, http.StatusOK, tenantID, orderID)
}

// GetActiveOrders handles GET /api/v1/tenants/{tenantId}/orders.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	tenantID, err := pathUUID(ctx, "tenantId")
	if err != nil {
		return err
	}
	query, err := boardQuery(ctx, tenantID)
	if err != nil {
		return err
	}

	views, err := s.handlers.GetActiveOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toOrders(views))
}

// GetKitchenTicket handles GET /api/v1/tenants/{tenantId}/orders/{orderId}/kot.
func (s *Server) GetKitchenTicket(ctx echo.Context) error {
	tenantID, err := pathUUID(ctx, "tenantId")
	if err != nil {
		return err
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return err
	}

	query, err := queries.NewGetKitchenTicketQuery(tenantID, orderID)
	if err != nil {
		return err
	}
	ticket, err := s.handlers.GetKitchenTicket.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.String(http.StatusOK, ticket)
}

func (s *Server) respondOrder(ctx echo.Context, status int, tenantID, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(tenantID, orderID)
	if err != nil {
		return err
	}
	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(status, toOrder(view))
}

// boardQuery reads ?board=waiter|kitchen, falling back to explicit ?status= filters.
func boardQuery(ctx echo.Context, tenantID kernel.UUID) (queries.GetActiveOrdersQuery, error) {
	board, err := queryString(ctx.QueryParams(), "board", false)
	if err != nil {
		return queries.GetActiveOrdersQuery{}, err
	}

	switch board {
	case "kitchen":
		return queries.NewKitchenBoardQuery(tenantID)
	case "waiter":
		return queries.NewWaiterBoardQuery(tenantID)
	case "":
	default:
		return queries.GetActiveOrdersQuery{}, errs.NewValueIsInvalidError("board must be waiter or kitchen")
	}

	raw, err := queryStrings(ctx.QueryParams(), "status")
	if err != nil {
		return queries.GetActiveOrdersQuery{}, err
	}
	statuses := make([]order.Status, len(raw))
	for i, name := range raw {
		if statuses[i], err = order.ParseStatus(name); err != nil {
			return queries.GetActiveOrdersQuery{}, err
		}
	}
	return queries.NewGetActiveOrdersQuery(tenantID, statuses, false)
}
