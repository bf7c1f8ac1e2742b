// Package usecases exposes the order application service. OrderService is the single entry
// point used by drivers (the example app and the jobs); it builds commands and queries from
// primitive input, runs the matching handler, logs the outcome and records metrics.
package usecases

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/metrics"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("ordering/usecases")

// Handlers groups the command and query handlers behind OrderService.
type Handlers struct {
	CreateOrder          commands.CreateOrderCommandHandler
	AddItemToOrder       commands.AddItemToOrderCommandHandler
	RemoveItemFromOrder  commands.RemoveItemFromOrderCommandHandler
	ConfirmOrder         commands.ConfirmOrderCommandHandler
	CancelOrder          commands.CancelOrderCommandHandler
	ShipOrder            commands.ShipOrderCommandHandler
	DeliverOrder         commands.DeliverOrderCommandHandler
	ExpireDraftOrders    commands.ExpireDraftOrdersCommandHandler
	GetOrderDetails      queries.GetOrderDetailsQueryHandler
	GetCustomerOrders    queries.GetCustomerOrdersQueryHandler
	CalculateShippingFee queries.CalculateShippingFeeQueryHandler
}

type OrderService struct {
	handlers Handlers
	logger   *slog.Logger
	metrics  *metrics.UseCaseMetrics
}

// NewOrderService wires the facade. m may be nil to disable metrics.
func NewOrderService(handlers Handlers, logger *slog.Logger, m *metrics.UseCaseMetrics) *OrderService {
	return &OrderService{
		handlers: handlers,
		logger:   logger.With("component", "order_service"),
		metrics:  m,
	}
}

// CreateOrder opens a Draft order for the customer and returns its new ID.
func (s *OrderService) CreateOrder(ctx context.Context, customerID kernel.CustomerID) (kernel.OrderID, error) {
	orderID := kernel.NewOrderID()
	err := s.run(ctx, "create_order", func(ctx context.Context) error {
		cmd, err := commands.NewCreateOrderCommand(orderID, customerID)
		if err != nil {
			return err
		}
		return s.handlers.CreateOrder.Handle(ctx, cmd)
	}, "order_id", orderID, "customer_id", customerID)
	if err != nil {
		return kernel.OrderID{}, err
	}
	return orderID, nil
}

func (s *OrderService) AddItemToOrder(
	ctx context.Context,
	orderID kernel.OrderID,
	productID kernel.ProductID,
	productName string,
	unitPrice decimal.Decimal,
	quantity int,
) error {
	return s.run(ctx, "add_item_to_order", func(ctx context.Context) error {
		cmd, err := commands.NewAddItemToOrderCommand(orderID, productID, productName, unitPrice, quantity)
		if err != nil {
			return err
		}
		return s.handlers.AddItemToOrder.Handle(ctx, cmd)
	}, "order_id", orderID, "product_id", productID, "quantity", quantity)
}

func (s *OrderService) RemoveItemFromOrder(ctx context.Context, orderID kernel.OrderID, productID kernel.ProductID) error {
	return s.run(ctx, "remove_item_from_order", func(ctx context.Context) error {
		cmd, err := commands.NewRemoveItemFromOrderCommand(orderID, productID)
		if err != nil {
			return err
		}
		return s.handlers.RemoveItemFromOrder.Handle(ctx, cmd)
	}, "order_id", orderID, "product_id", productID)
}

func (s *OrderService) ConfirmOrder(ctx context.Context, orderID kernel.OrderID) error {
	return s.run(ctx, "confirm_order", func(ctx context.Context) error {
		cmd, err := commands.NewConfirmOrderCommand(orderID)
		if err != nil {
			return err
		}
		return s.handlers.ConfirmOrder.Handle(ctx, cmd)
	}, "order_id", orderID)
}

func (s *OrderService) CancelOrder(ctx context.Context, orderID kernel.OrderID) error {
	return s.run(ctx, "cancel_order", func(ctx context.Context) error {
		cmd, err := commands.NewCancelOrderCommand(orderID)
		if err != nil {
			return err
		}
		return s.handlers.CancelOrder.Handle(ctx, cmd)
	}, "order_id", orderID)
}

func (s *OrderService) ShipOrder(ctx context.Context, orderID kernel.OrderID) error {
	return s.run(ctx, "ship_order", func(ctx context.Context) error {
		cmd, err := commands.NewShipOrderCommand(orderID)
		if err != nil {
			return err
		}
		return s.handlers.ShipOrder.Handle(ctx, cmd)
	}, "order_id", orderID)
}

func (s *OrderService) DeliverOrder(ctx context.Context, orderID kernel.OrderID) error {
	return s.run(ctx, "deliver_order", func(ctx context.Context) error {
		cmd, err := commands.NewDeliverOrderCommand(orderID)
		if err != nil {
			return err
		}
		return s.handlers.DeliverOrder.Handle(ctx, cmd)
	}, "order_id", orderID)
}

// ExpireDraftOrders cancels Draft orders older than olderThan and returns how many were cancelled.
func (s *OrderService) ExpireDraftOrders(ctx context.Context, olderThan time.Duration) (int, error) {
	var expired int
	cutoff := time.Now().UTC().Add(-olderThan)
	err := s.run(ctx, "expire_draft_orders", func(ctx context.Context) error {
		cmd, err := commands.NewExpireDraftOrdersCommand(cutoff)
		if err != nil {
			return err
		}
		expired, err = s.handlers.ExpireDraftOrders.Handle(ctx, cmd)
		return err
	}, "created_before", cutoff)
	return expired, err
}

// GetOrderDetails returns nil without an error when the order does not exist.
func (s *OrderService) GetOrderDetails(ctx context.Context, orderID kernel.OrderID) (*queries.OrderDetails, error) {
	var details *queries.OrderDetails
	err := s.run(ctx, "get_order_details", func(ctx context.Context) error {
		query, err := queries.NewGetOrderDetailsQuery(orderID)
		if err != nil {
			return err
		}
		details, err = s.handlers.GetOrderDetails.Handle(ctx, query)
		return err
	}, "order_id", orderID)
	return details, err
}

func (s *OrderService) GetCustomerOrders(ctx context.Context, customerID kernel.CustomerID) ([]queries.OrderDetails, error) {
	var orders []queries.OrderDetails
	err := s.run(ctx, "get_customer_orders", func(ctx context.Context) error {
		query, err := queries.NewGetCustomerOrdersQuery(customerID)
		if err != nil {
			return err
		}
		orders, err = s.handlers.GetCustomerOrders.Handle(ctx, query)
		return err
	}, "customer_id", customerID)
	return orders, err
}

func (s *OrderService) CalculateShippingFee(ctx context.Context, orderID kernel.OrderID, address string) (kernel.Money, error) {
	var fee kernel.Money
	err := s.run(ctx, "calculate_shipping_fee", func(ctx context.Context) error {
		query, err := queries.NewCalculateShippingFeeQuery(orderID, address)
		if err != nil {
			return err
		}
		fee, err = s.handlers.CalculateShippingFee.Handle(ctx, query)
		return err
	}, "order_id", orderID)
	return fee, err
}

// run executes one use case. Rejections defined by the domain are logged at info level;
// only unclassified failures are logged as errors.
func (s *OrderService) run(ctx context.Context, useCase string, fn func(ctx context.Context) error, attrs ...any) error {
	ctx, span := tracer.Start(ctx, "OrderService."+useCase)
	defer span.End()

	start := time.Now()
	err := fn(ctx)

	outcome := metrics.Outcome(err)
	span.SetAttributes(attribute.String("use_case", useCase), attribute.String("outcome", outcome))
	if outcome == metrics.OutcomeError {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if s.metrics != nil {
		s.metrics.Observe(useCase, start, err)
	}

	attrs = append(attrs, "use_case", useCase, "outcome", outcome, "duration", time.Since(start))
	switch outcome {
	case metrics.OutcomeOK:
		s.logger.DebugContext(ctx, "Use case completed", attrs...)
	case metrics.OutcomeError:
		s.logger.ErrorContext(ctx, "Use case failed", append(attrs, "error", err)...)
	default:
		s.logger.InfoContext(ctx, "Use case rejected", append(attrs, "error", err)...)
	}

	return err
}
