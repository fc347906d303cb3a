package http

import (
	"context"
	"log/slog"
	"net/http"

	"restaurant/api"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance: access logging, panic recovery, OpenAPI request
// validation on /api/v1, the Swagger UI on /swagger and every route of the document.
func NewRouter(ctx context.Context, s *Server, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = registerSwaggerDoc(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(accessLog(logger))

	e.GET("/health", s.Health)
	e.GET("/openapi.yml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", api.OpenAPI)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1", validator)

	// customer
	v1.GET("/menu", s.GetMenu)
	v1.POST("/orders", s.PlaceOrder)

	// staff
	v1.GET("/tenants/:tenantId/orders", s.GetActiveOrders)
	v1.GET("/tenants/:tenantId/orders/:orderId", s.GetOrder)
	v1.POST("/tenants/:tenantId/orders/:orderId/status", s.AdvanceOrder)
	v1.GET("/tenants/:tenantId/orders/:orderId/kot", s.GetKitchenTicket)
	v1.GET("/tenants/:tenantId/events", s.StreamEvents)
	v1.POST("/tenants/:tenantId/devices", s.RegisterDevice)

	// admin
	v1.POST("/tenants", s.CreateTenant)
	v1.GET("/tenants/:tenantId/tables", s.GetTables)
	v1.POST("/tenants/:tenantId/tables", s.CreateTable)
	v1.POST("/tenants/:tenantId/menu-items", s.CreateMenuItem)
	v1.PATCH("/tenants/:tenantId/menu-items/:itemId", s.SetMenuItemAvailability)
	v1.GET("/tenants/:tenantId/inventory", s.GetInventory)
	v1.POST("/tenants/:tenantId/inventory", s.CreateInventoryItem)
	v1.GET("/tenants/:tenantId/inventory/alerts", s.GetInventoryAlerts)
	v1.PATCH("/tenants/:tenantId/inventory/:itemId", s.AdjustInventory)
	v1.GET("/tenants/:tenantId/sales/daily", s.GetDailySales)

	return e, nil
}

func accessLog(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http")
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			switch {
			case v.Status >= http.StatusInternalServerError:
				level = slog.LevelError
			case v.Status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), level, "Request", attrs...)
			return nil
		},
	})
}
