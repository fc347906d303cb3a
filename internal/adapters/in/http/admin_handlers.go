package http

import (
	"net/http"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateTenant handles POST /api/v1/tenants.
func (s *Server) CreateTenant(ctx echo.Context) error {
	var req NewTenant
	if err := ctx.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	tenantID := kernel.NewUUID()
	cmd, err := commands.NewCreateTenantCommand(tenantID, req.Name, req.Domain)
	if err != nil {
		return err
	}
	if err = s.handlers.CreateTenant.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, Created{ID: tenantID.Bytes()})
}

// GetTables handles GET /api/v1/tenants/{tenantId}/tables.
func (s *Server) GetTables(ctx echo.Context) error {
	tenantID, err := pathUUID(ctx, "tenantId")
	if err != nil {
		return err
	}
	baseURL, err := queryString(ctx.QueryParams(), "baseUrl", false)
	if err != nil {
		return err
	}

	tables, err := s.tables(ctx, tenantID, baseURL)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toTables(tables))
}

// CreateTable handles POST /api/v1/tenants/{tenantId}/tables. The response carries
// the menu URL to encode in the table's QR code.
func (s *Server) CreateTable(ctx echo.Context) error {
	tenantID, err := pathUUID(ctx, "tenantId")
	if err != nil {
		return err
	}

	var req NewTable
	if err = ctx.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	tableID := kernel.NewUUID()
	cmd, err := commands.NewCreateTableCommand(tableID, tenantID, req.Number)
	if err != nil {
		return err
	}
	if err = s.handlers.CreateTable.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	tables, err := s.tables(ctx, tenantID, "")
	if err != nil {
		return err
	}
	for _, t := range tables {
		if t.ID.IsEqual(tableID) {
			return ctx.JSON(http.StatusCreated, Created{ID: tableID.Bytes(), MenuURL: t.MenuURL})
		}
	}
	return errs.NewObjectNotFoundError("table", tableID)
}

// CreateMenuItem handles POST /api/v1/tenants/{tenantId}/menu-items.
func (s *Server) CreateMenuItem(ctx echo.Context) error {
	tenantID, err := pathUUID(ctx, "tenantId")
	if err != nil {
		return err
	}

	var req NewMenuItem
	if err = ctx.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	itemID := kernel.NewUUID()
	cmd, err := commands.NewCreateMenuItemCommand(itemID, tenantID, req.Name, req.Description, req.Price, req.Category, req.PrepMinutes)
	if err != nil {
		return err
	}
	if err = s.handlers.CreateMenuItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, Created{ID: itemID.Bytes()})
}

// SetMenuItemAvailability handles PATCH /api/v1/tenants/{tenantId}/menu-items/{itemId}.
func (s *Server) SetMenuItemAvailability(ctx echo.Context) error {
	tenantID, err := pathUUID(ctx, "tenantId")
	if err != nil {
		return err
	}
	itemID, err := pathUUID(ctx, "itemId")
	if err != nil {
		return err
	}

	var req Availability
	if err = ctx.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	cmd, err := commands.NewSetMenuItemAvailabilityCommand(tenantID, itemID, req.Available)
	if err != nil {
		return err
	}
	if err = s.handlers.SetMenuItemAvailability.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RegisterDevice handles POST /api/v1/tenants/{tenantId}/devices.
func (s *Server) RegisterDevice(ctx echo.Context) error {
	tenantID, err := pathUUID(ctx, "tenantId")
	if err != nil {
		return err
	}

	var req NewDevice
	if err = ctx.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	role, err := kernel.ParseRole(req.Role)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRegisterDeviceCommand(kernel.NewUUID(), tenantID, role, req.PushToken)
	if err != nil {
		return err
	}
	if err = s.handlers.RegisterDevice.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateInventoryItem handles POST /api/v1/tenants/{tenantId}/inventory.
func (s *Server) CreateInventoryItem(ctx echo.Context) error {
	tenantID, err := pathUUID(ctx, "tenantId")
	if err != nil {
		return err
	}

	var req NewInventoryItem
	if err = ctx.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	itemID := kernel.NewUUID()
	cmd, err := commands.NewCreateInventoryItemCommand(itemID, tenantID, req.Name, req.Unit, req.Quantity, req.MinThreshold)
	if err != nil {
		return err
	}
	if err = s.handlers.CreateInventoryItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, Created{ID: itemID.Bytes()})
}

// AdjustInventory handles PATCH /api/v1/tenants/{tenantId}/inventory/{itemId}.
func (s *Server) AdjustInventory(ctx echo.Context) error {
	tenantID, err := pathUUID(ctx, "tenantId")
	if err != nil {
		return err
	}
	itemID, err := pathUUID(ctx, "itemId")
	if err != nil {
		return err
	}

	var req StockAdjustment
	if err = ctx.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	cmd, err := commands.NewAdjustInventoryCommand(tenantID, itemID, req.Quantity)
	if err != nil {
		return err
	}
	if err = s.handlers.AdjustInventory.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetInventory handles GET /api/v1/tenants/{tenantId}/inventory.
func (s *Server) GetInventory(ctx echo.Context) error {
	return s.inventory(ctx, queries.NewGetInventoryQuery)
}

// GetInventoryAlerts handles GET /api/v1/tenants/{tenantId}/inventory/alerts.
func (s *Server) GetInventoryAlerts(ctx echo.Context) error {
	return s.inventory(ctx, queries.NewGetInventoryAlertsQuery)
}

func (s *Server) inventory(ctx echo.Context, newQuery func(kernel.UUID) (queries.GetInventoryQuery, error)) error {
	tenantID, err := pathUUID(ctx, "tenantId")
	if err != nil {
		return err
	}

	query, err := newQuery(tenantID)
	if err != nil {
		return err
	}
	items, err := s.handlers.GetInventory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toInventory(items))
}

// GetDailySales handles GET /api/v1/tenants/{tenantId}/sales/daily.
func (s *Server) GetDailySales(ctx echo.Context) error {
	tenantID, err := pathUUID(ctx, "tenantId")
	if err != nil {
		return err
	}
	from, err := queryTime(ctx.QueryParams(), "from")
	if err != nil {
		return err
	}
	to, err := queryTime(ctx.QueryParams(), "to")
	if err != nil {
		return err
	}
	tz, err := queryString(ctx.QueryParams(), "tz", false)
	if err != nil {
		return err
	}

	var loc *time.Location
	if tz != "" {
		if loc, err = time.LoadLocation(tz); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("tz", err)
		}
	}

	query, err := queries.NewGetDailySalesQuery(tenantID, from, to, loc)
	if err != nil {
		return err
	}
	sales, err := s.handlers.GetDailySales.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toDailySales(sales))
}

func (s *Server) tables(ctx echo.Context, tenantID kernel.UUID, baseURL string) ([]queries.TableView, error) {
	if baseURL == "" {
		baseURL = s.baseURL
	}
	query, err := queries.NewGetTablesQuery(tenantID, baseURL)
	if err != nil {
		return nil, err
	}
	return s.handlers.GetTables.Handle(ctx.Request().Context(), query)
}
