// Package orderrepo persists order aggregates with GORM. An order is stored as one row in
// orders plus one row per line in order_items.
package orderrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Version is the optimistic concurrency token.
type OrderDTO struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID      `gorm:"type:uuid;not null;index"`
	OrderDate  time.Time      `gorm:"type:timestamptz;not null;index"`
	Status     int            `gorm:"type:smallint;not null;index"`
	Version    int            `gorm:"type:int;not null"`
	Items      []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order line. Position keeps the insertion order of the aggregate.
type OrderItemDTO struct {
	OrderID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position    int             `gorm:"type:int;not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric;not null"`
	Currency    string          `gorm:"type:varchar(16);not null"`
	Quantity    int             `gorm:"type:int;not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain maps the aggregate to its rows. Version is the aggregate's current version;
// the repository decides which version gets written.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().UUID().Bytes()
	items := make([]OrderItemDTO, 0, o.ItemCount())

	for position, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:     orderID,
			ProductID:   item.ProductID().UUID().Bytes(),
			Position:    position,
			ProductName: item.ProductName(),
			UnitPrice:   item.UnitPrice().Amount(),
			Currency:    item.UnitPrice().Currency(),
			Quantity:    item.Quantity(),
		})
	}

	return OrderDTO{
		ID:         orderID,
		CustomerID: o.CustomerID().UUID().Bytes(),
		OrderDate:  o.OrderDate(),
		Status:     int(o.Status()),
		Version:    o.Version(),
		Items:      items,
	}
}

// toDomain rebuilds the aggregate with RestoreOrder. Items must already be sorted by position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	rawID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	id, err := kernel.OrderIDFromUUID(rawID)
	if err != nil {
		return nil, err
	}

	rawCustomerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.CustomerIDFromUUID(rawCustomerID)
	if err != nil {
		return nil, err
	}

	items := make([]order.OrderItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(id, customerID, dto.OrderDate, order.Status(dto.Status), items, dto.Version)
}

func itemToDomain(dto OrderItemDTO) (order.OrderItem, error) {
	rawProductID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.OrderItem{}, err
	}
	productID, err := kernel.ProductIDFromUUID(rawProductID)
	if err != nil {
		return order.OrderItem{}, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice, dto.Currency)
	if err != nil {
		return order.OrderItem{}, err
	}

	return order.NewOrderItem(productID, dto.ProductName, unitPrice, dto.Quantity)
}
