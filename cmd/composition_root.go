package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpadapter "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/changefeed"
	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/adapters/out/postgres/devicerepo"
	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/adapters/out/push"
	"restaurant/internal/core/application/notifications"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      kernel.Clock
	logger     *slog.Logger

	hub        *changefeed.Hub
	publisher  ports.ChangePublisher
	pushSender ports.PushSender
	relayJob   *jobs.OutboxRelayJob
	closers    []func() error
}

// NewCompositionRoot wires the adapters selected by config. The postgres change feed
// driver publishes with NOTIFY and delivers to local subscribers through a listener job;
// the memory driver publishes straight into the local hub.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      kernel.SystemClock{},
		logger:     logger,
		hub:        changefeed.NewHub(config.ChangeFeedBuffer),
	}

	switch config.ChangeFeedDriver {
	case ChangeFeedPostgres:
		c.publisher = changefeed.NewPGPublisher(gormDB, config.ChangeFeedChannel)
	default:
		c.publisher = c.hub
	}

	if config.AMQPURL != "" {
		sender, err := push.NewAMQPSender(config.AMQPURL, logger)
		if err != nil {
			return nil, fmt.Errorf("connect push broker: %w", err)
		}
		c.pushSender = sender
		c.closers = append(c.closers, sender.Close)
	} else {
		c.pushSender = push.NewLogSender(logger)
	}

	c.relayJob = jobs.NewOutboxRelayJob(c.CreateRelayOutboxCommandHandler(), config.RelayBatchSize, logger)

	return c, nil
}

// Feed is the local change feed HTTP streams subscribe to.
func (c *CompositionRoot) Feed() *changefeed.Hub {
	return c.hub
}

// RelayTrigger is handed to the command handlers that store change events.
func (c *CompositionRoot) RelayTrigger() commands.RelayTrigger {
	return c.relayJob
}

// Close ends every stream and releases broker connections.
func (c *CompositionRoot) Close() {
	c.hub.Close()
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			c.logger.Warn("Failed to close adapter", "error", err)
		}
	}
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.RelayTrigger(), c.clock)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderCommandHandler(f, c.RelayTrigger(), c.clock)
}

func (c *CompositionRoot) CreateCreateTenantCommandHandler() commands.CreateTenantCommandHandler {
	return commands.NewCreateTenantCommandHandler(c.referenceUoWFactory())
}

func (c *CompositionRoot) CreateCreateTableCommandHandler() commands.CreateTableCommandHandler {
	return commands.NewCreateTableCommandHandler(c.referenceUoWFactory())
}

func (c *CompositionRoot) CreateCreateMenuItemCommandHandler() commands.CreateMenuItemCommandHandler {
	return commands.NewCreateMenuItemCommandHandler(c.referenceUoWFactory())
}

func (c *CompositionRoot) CreateSetMenuItemAvailabilityCommandHandler() commands.SetMenuItemAvailabilityCommandHandler {
	return commands.NewSetMenuItemAvailabilityCommandHandler(c.referenceUoWFactory())
}

func (c *CompositionRoot) CreateRegisterDeviceCommandHandler() commands.RegisterDeviceCommandHandler {
	return commands.NewRegisterDeviceCommandHandler(c.referenceUoWFactory())
}

func (c *CompositionRoot) CreateCreateInventoryItemCommandHandler() commands.CreateInventoryItemCommandHandler {
	return commands.NewCreateInventoryItemCommandHandler(c.referenceUoWFactory())
}

func (c *CompositionRoot) CreateAdjustInventoryCommandHandler() commands.AdjustInventoryCommandHandler {
	return commands.NewAdjustInventoryCommandHandler(c.referenceUoWFactory(), c.staffNotifier())
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	return commands.NewRelayOutboxCommandHandler(c.outboxUoWFactory(), c.publisher, c.staffNotifier(), c.clock)
}

func (c *CompositionRoot) staffNotifier() *notifications.StaffNotifier {
	return notifications.NewStaffNotifier(devicerepo.NewGormDeviceRepository(c.gormDB), c.pushSender, c.logger)
}

func (c *CompositionRoot) CreateCleanupOutboxCommandHandler() commands.CleanupOutboxCommandHandler {
	return commands.NewCleanupOutboxCommandHandler(c.outboxUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateGetMenuQueryHandler() queries.GetMenuQueryHandler {
	return queries.NewGetMenuQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetKitchenTicketQueryHandler() queries.GetKitchenTicketQueryHandler {
	// Reading outside a unit of work, nothing is tracked.
	orders := orderrepo.NewGormOrderRepository(c.gormDB, nil)
	return queries.NewGetKitchenTicketQueryHandler(orders, services.NewKitchenTicketRenderer(c.config.Location()), c.clock)
}

func (c *CompositionRoot) CreateGetDailySalesQueryHandler() queries.GetDailySalesQueryHandler {
	return queries.NewGetDailySalesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTablesQueryHandler() queries.GetTablesQueryHandler {
	return queries.NewGetTablesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetInventoryQueryHandler() queries.GetInventoryQueryHandler {
	return queries.NewGetInventoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPHandlers() httpadapter.Handlers {
	return httpadapter.Handlers{
		PlaceOrder:              c.CreatePlaceOrderCommandHandler(),
		AdvanceOrder:            c.CreateAdvanceOrderCommandHandler(),
		CreateTenant:            c.CreateCreateTenantCommandHandler(),
		CreateTable:             c.CreateCreateTableCommandHandler(),
		CreateMenuItem:          c.CreateCreateMenuItemCommandHandler(),
		SetMenuItemAvailability: c.CreateSetMenuItemAvailabilityCommandHandler(),
		RegisterDevice:          c.CreateRegisterDeviceCommandHandler(),
		CreateInventoryItem:     c.CreateCreateInventoryItemCommandHandler(),
		AdjustInventory:         c.CreateAdjustInventoryCommandHandler(),

		GetMenu:          c.CreateGetMenuQueryHandler(),
		GetOrder:         c.CreateGetOrderQueryHandler(),
		GetActiveOrders:  c.CreateGetActiveOrdersQueryHandler(),
		GetKitchenTicket: c.CreateGetKitchenTicketQueryHandler(),
		GetDailySales:    c.CreateGetDailySalesQueryHandler(),
		GetTables:        c.CreateGetTablesQueryHandler(),
		GetInventory:     c.CreateGetInventoryQueryHandler(),
	}
}

// CreateRouter builds the HTTP API.
func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	server := httpadapter.NewServer(c.CreateHTTPHandlers(), c.hub, c.config.PublicBaseURL, c.logger)
	return httpadapter.NewRouter(ctx, server, c.logger)
}

// CreateJobManager returns the background jobs: the outbox relay and cleanup, plus the
// NOTIFY listener when the postgres change feed driver is selected.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	all := []jobs.Job{
		c.relayJob,
		jobs.NewOutboxCleanupJob(c.CreateCleanupOutboxCommandHandler(), c.config.CleanupSchedule, c.config.OutboxRetention, c.logger),
	}
	if c.config.ChangeFeedDriver == ChangeFeedPostgres {
		listener := changefeed.NewPGListener(c.config.DSN(), c.config.ChangeFeedChannel, c.hub, c.logger)
		all = append([]jobs.Job{jobs.NewChangeFeedListenerJob(listener, c.logger)}, all...)
	}
	return jobs.NewJobManager(all...)
}

func (c *CompositionRoot) referenceUoWFactory() commands.ReferenceUoWFactory {
	return FuncReferenceUoWFactory(func() commands.ReferenceUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncReferenceUoWFactory func() commands.ReferenceUoW

func (f FuncReferenceUoWFactory) Create() commands.ReferenceUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
