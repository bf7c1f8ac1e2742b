package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"ordering/internal/adapters/out/events"
	"ordering/internal/adapters/out/kafka"
	"ordering/internal/adapters/out/memory"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/inventoryrepo"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/application/usecases"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"
	"ordering/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CompositionRoot owns the adapters selected by Config and builds the application service on top of them.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	uowFactory ports.UnitOfWorkFactory
	orders     queries.OrderReader
	inventory  ports.InventoryService
	shipping   ports.ShippingService

	closers []func() error
}

func NewCompositionRoot(cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{cfg: cfg, logger: logger}

	dispatcher := events.NewDispatcher(c.eventPublisher(), logger)

	switch cfg.StorageDriver {
	case StoragePostgres:
		db, err := gorm.Open(gormpostgres.Open(cfg.PostgresDSN()), &gorm.Config{TranslateError: true})
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}, &inventoryrepo.StockDTO{}); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("migrate postgres schema: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			c.closers = append(c.closers, sqlDB.Close)
		}

		c.uowFactory = postgres.NewGormUnitOfWorkFactory(db, dispatcher)
		c.orders = orderrepo.NewGormOrderRepository(db, nil)
		c.inventory = inventoryrepo.NewGormInventoryRepository(db, cfg.DefaultStock)
	default:
		store := memory.NewStore()
		c.uowFactory = memory.NewUnitOfWorkFactory(store, dispatcher)
		c.orders = memory.NewOrderRepository(store)
		c.inventory = memory.NewInventoryService(cfg.DefaultStock)
	}

	c.shipping = memory.NewShippingService()
	return c, nil
}

// eventPublisher logs every event and also sends it to Kafka when brokers are configured.
func (c *CompositionRoot) eventPublisher() ports.EventPublisher {
	publishers := events.Fanout{events.NewLogPublisher(c.logger)}

	if len(c.cfg.KafkaBrokers) > 0 {
		producer := kafka.NewPublisher(c.cfg.KafkaBrokers, c.cfg.KafkaOrderEventsTopic)
		c.closers = append(c.closers, producer.Close)
		publishers = append(publishers, producer)
	}
	return publishers
}

// NewOrderService builds the application service and registers its metrics with reg.
// reg may be nil to disable metrics.
func (c *CompositionRoot) NewOrderService(reg prometheus.Registerer) (*usecases.OrderService, error) {
	domainService, err := services.NewOrderDomainService(c.inventory, c.shipping, c.cfg.FreeShippingThreshold)
	if err != nil {
		return nil, err
	}

	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})

	handlers := usecases.Handlers{
		CreateOrder:          commands.NewCreateOrderCommandHandler(f),
		AddItemToOrder:       commands.NewAddItemToOrderCommandHandler(f, c.cfg.ReferenceCurrency),
		RemoveItemFromOrder:  commands.NewRemoveItemFromOrderCommandHandler(f),
		ConfirmOrder:         commands.NewConfirmOrderCommandHandler(f, domainService),
		CancelOrder:          commands.NewCancelOrderCommandHandler(f),
		ShipOrder:            commands.NewShipOrderCommandHandler(f),
		DeliverOrder:         commands.NewDeliverOrderCommandHandler(f),
		ExpireDraftOrders:    commands.NewExpireDraftOrdersCommandHandler(f),
		GetOrderDetails:      queries.NewGetOrderDetailsQueryHandler(c.orders),
		GetCustomerOrders:    queries.NewGetCustomerOrdersQueryHandler(c.orders),
		CalculateShippingFee: queries.NewCalculateShippingFeeQueryHandler(c.orders, domainService),
	}

	var m *metrics.UseCaseMetrics
	if reg != nil {
		m = metrics.NewUseCaseMetrics(reg)
	}
	return usecases.NewOrderService(handlers, c.logger, m), nil
}

func (c *CompositionRoot) NewJobManager(expirer jobs.DraftExpirer) *jobs.JobManager {
	return jobs.NewJobManager(expirer, c.cfg.DraftOrderTTL, c.cfg.DraftExpirationSchedule, c.logger)
}

// Close releases the database pool and the Kafka writer.
func (c *CompositionRoot) Close() error {
	var closeErrs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		closeErrs = append(closeErrs, c.closers[i]())
	}
	return errors.Join(closeErrs...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
